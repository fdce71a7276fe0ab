package db

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/tordrt/schemasheet/internal/errs"
	"github.com/tordrt/schemasheet/internal/schema"
)

// Catalog is the read-only introspection contract every dialect implements.
// Everything above this package depends only on this interface.
type Catalog interface {
	// Dialect reports which catalog flavour the rows come from.
	Dialect() schema.Dialect

	// Owner is the schema (SQL Server) or owner (Oracle) being read.
	Owner() string

	// ListTables returns base tables ordered by name.
	ListTables(ctx context.Context) ([]TableRow, error)

	// ListViews returns views ordered by name.
	ListViews(ctx context.Context) ([]ViewRow, error)

	// ColumnInfo returns the columns of table in ordinal order.
	ColumnInfo(ctx context.Context, table string) ([]ColumnRow, error)

	// IndexInfo returns the named indexes of table ordered by name.
	IndexInfo(ctx context.Context, table string) ([]IndexRow, error)

	// ForeignKeyInfo returns one row per referencing column of table.
	ForeignKeyInfo(ctx context.Context, table string) ([]ForeignKeyRow, error)
}

// Operation names carried by query errors
const (
	opListTables = "list_tables"
	opListViews  = "list_views"
	opColumnInfo = "column_info"
	opIndexInfo  = "index_info"
	opFKInfo     = "fk_info"
)

// TableRow is one row of the table list query
type TableRow struct {
	Name    string         `db:"TABLE_NAME"`
	Comment sql.NullString `db:"TABLE_COMMENT"`
}

// ViewRow is one row of the view list query
type ViewRow struct {
	Name       string         `db:"VIEW_NAME"`
	Definition sql.NullString `db:"VIEW_DEFINITION"`
	Comment    sql.NullString `db:"VIEW_COMMENT"`
}

// ColumnRow is one row of the column query. Both dialects alias their
// catalog fields to these names; IsNullable holds the raw YES/NO or Y/N.
type ColumnRow struct {
	Name         string         `db:"COLUMN_NAME"`
	DataType     string         `db:"DATA_TYPE"`
	IsNullable   string         `db:"IS_NULLABLE"`
	CharLength   sql.NullInt64  `db:"CHAR_LENGTH"`
	Precision    sql.NullInt64  `db:"NUMERIC_PRECISION"`
	Scale        sql.NullInt64  `db:"NUMERIC_SCALE"`
	IsPrimaryKey string         `db:"IS_PRIMARY_KEY"`
	Comment      sql.NullString `db:"COLUMN_COMMENT"`
}

// IndexRow is one row of the index query. Columns is the comma-joined key
// list in key order. IsPrimaryKey stays invalid when the dialect omits it.
type IndexRow struct {
	Name         string         `db:"INDEX_NAME"`
	Columns      string         `db:"COLUMN_NAMES"`
	IsUnique     string         `db:"IS_UNIQUE"`
	IsPrimaryKey sql.NullString `db:"IS_PRIMARY_KEY"`
	Kind         sql.NullString `db:"INDEX_TYPE"`
}

// ForeignKeyRow maps one referencing column to its target
type ForeignKeyRow struct {
	Column    string `db:"COLUMN_NAME"`
	RefOwner  string `db:"REF_OWNER"`
	RefTable  string `db:"REF_TABLE"`
	RefColumn string `db:"REF_COLUMN"`
}

// selectRows runs one catalog query and maps every row onto T by db tag.
// A failure is reported with the operation and table it belongs to.
func selectRows[T any](ctx context.Context, db *sqlx.DB, op, table, query string, args ...any) ([]T, error) {
	var rows []T
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errs.Query(op, table, err)
	}
	return rows, nil
}
