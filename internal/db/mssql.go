package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/microsoft/go-mssqldb"

	"github.com/tordrt/schemasheet/internal/errs"
)

// MSSQLClient manages the connection to SQL Server
type MSSQLClient struct {
	db *sqlx.DB
}

// NewMSSQLClient creates a new SQL Server client from a sqlserver:// URL or ADO string
func NewMSSQLClient(ctx context.Context, connString string) (*MSSQLClient, error) {
	db, err := sqlx.Open("sqlserver", connString)
	if err != nil {
		return nil, errs.Connect("failed to open database", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errs.Connect("failed to ping database", err)
	}

	return &MSSQLClient{db: db}, nil
}

// Close closes the database connection
func (c *MSSQLClient) Close() error {
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("failed to close SQL Server connection: %w", err)
	}
	return nil
}

// GetDB returns the underlying database connection
func (c *MSSQLClient) GetDB() *sqlx.DB {
	return c.db
}
