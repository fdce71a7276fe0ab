package db

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/schemasheet/internal/errs"
	"github.com/tordrt/schemasheet/internal/schema"
)

func newMockMSSQL(t *testing.T) (*MSSQLCatalog, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	client := &MSSQLClient{db: sqlx.NewDb(mockDB, "sqlserver")}
	return NewMSSQLCatalog(client, "dbo"), mock
}

func TestMSSQLCatalogListTables(t *testing.T) {
	cat, mock := newMockMSSQL(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM INFORMATION_SCHEMA.TABLES t")).
		WithArgs(sql.Named("schema", "dbo")).
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME", "TABLE_COMMENT"}).
			AddRow("CUSTOMERS", nil).
			AddRow("ORDERS", "customer orders"))

	rows, err := cat.ListTables(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "CUSTOMERS", rows[0].Name)
	assert.False(t, rows[0].Comment.Valid)
	assert.Equal(t, "customer orders", rows[1].Comment.String)
	assert.Equal(t, schema.DialectMSSQL, cat.Dialect())
	assert.Equal(t, "dbo", cat.Owner())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMSSQLCatalogColumnInfo(t *testing.T) {
	cat, mock := newMockMSSQL(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM INFORMATION_SCHEMA.COLUMNS c")).
		WithArgs(sql.Named("schema", "dbo"), sql.Named("table", "ORDERS")).
		WillReturnRows(sqlmock.NewRows([]string{
			"COLUMN_NAME", "DATA_TYPE", "IS_NULLABLE", "CHAR_LENGTH",
			"NUMERIC_PRECISION", "NUMERIC_SCALE", "IS_PRIMARY_KEY", "COLUMN_COMMENT",
		}).
			AddRow("ID", "int", "NO", nil, 10, 0, "Y", nil).
			AddRow("CODE", "varchar", "YES", 50, nil, nil, "N", "order code"))

	rows, err := cat.ColumnInfo(context.Background(), "ORDERS")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ID", rows[0].Name)
	assert.Equal(t, "Y", rows[0].IsPrimaryKey)
	assert.Equal(t, int64(10), rows[0].Precision.Int64)
	assert.False(t, rows[0].CharLength.Valid)
	assert.Equal(t, int64(50), rows[1].CharLength.Int64)
	assert.Equal(t, "order code", rows[1].Comment.String)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMSSQLCatalogIndexAndForeignKeys(t *testing.T) {
	cat, mock := newMockMSSQL(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sys.indexes i")).
		WillReturnRows(sqlmock.NewRows([]string{"INDEX_NAME", "COLUMN_NAMES", "IS_UNIQUE", "IS_PRIMARY_KEY", "INDEX_TYPE"}).
			AddRow("PK_ORDERS", "ID", "Y", "Y", "CLUSTERED"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM sys.foreign_keys fk")).
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "REF_OWNER", "REF_TABLE", "REF_COLUMN"}).
			AddRow("CUSTOMER_ID", "dbo", "CUSTOMERS", "ID"))

	indexes, err := cat.IndexInfo(context.Background(), "ORDERS")
	require.NoError(t, err)
	require.Len(t, indexes, 1)
	assert.Equal(t, "Y", indexes[0].IsPrimaryKey.String)
	assert.Equal(t, "CLUSTERED", indexes[0].Kind.String)

	fks, err := cat.ForeignKeyInfo(context.Background(), "ORDERS")
	require.NoError(t, err)
	assert.Equal(t, []ForeignKeyRow{{Column: "CUSTOMER_ID", RefOwner: "dbo", RefTable: "CUSTOMERS", RefColumn: "ID"}}, fks)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMSSQLCatalogViews(t *testing.T) {
	cat, mock := newMockMSSQL(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sys.views v")).
		WillReturnRows(sqlmock.NewRows([]string{"VIEW_NAME", "VIEW_DEFINITION", "VIEW_COMMENT"}).
			AddRow("V_ORDERS", "CREATE VIEW V_ORDERS AS SELECT * FROM ORDERS", nil))

	views, err := cat.ListViews(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "CREATE VIEW V_ORDERS AS SELECT * FROM ORDERS", views[0].Definition.String)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMSSQLCatalogQueryError(t *testing.T) {
	cat, mock := newMockMSSQL(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sys.foreign_keys fk")).
		WillReturnError(errors.New("Invalid object name"))

	_, err := cat.ForeignKeyInfo(context.Background(), "ORDERS")
	require.Error(t, err)
	assert.True(t, errs.IsQueryFailed(err))
	assert.Contains(t, err.Error(), "fk_info ORDERS")
}
