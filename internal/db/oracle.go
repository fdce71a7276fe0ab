package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2"

	"github.com/tordrt/schemasheet/internal/errs"
)

// OracleClient manages the connection to Oracle
type OracleClient struct {
	db *sqlx.DB
}

// NewOracleClient creates a new Oracle client from an oracle:// URL
func NewOracleClient(ctx context.Context, connString string) (*OracleClient, error) {
	db, err := sqlx.Open("oracle", connString)
	if err != nil {
		return nil, errs.Connect("failed to open database", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errs.Connect("failed to ping database", err)
	}

	return &OracleClient{db: db}, nil
}

// Close closes the database connection
func (c *OracleClient) Close() error {
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("failed to close Oracle connection: %w", err)
	}
	return nil
}

// GetDB returns the underlying database connection
func (c *OracleClient) GetDB() *sqlx.DB {
	return c.db
}
