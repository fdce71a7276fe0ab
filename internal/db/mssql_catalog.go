package db

import (
	"context"
	"database/sql"

	"github.com/tordrt/schemasheet/internal/schema"
)

// MSSQLCatalog reads SQL Server metadata through INFORMATION_SCHEMA and sys.* views
type MSSQLCatalog struct {
	client *MSSQLClient
	schema string
}

// NewMSSQLCatalog creates a catalog reader scoped to one schema (usually dbo)
func NewMSSQLCatalog(client *MSSQLClient, schemaName string) *MSSQLCatalog {
	return &MSSQLCatalog{
		client: client,
		schema: schemaName,
	}
}

// Dialect reports SQL Server
func (c *MSSQLCatalog) Dialect() schema.Dialect { return schema.DialectMSSQL }

// Owner returns the schema being read
func (c *MSSQLCatalog) Owner() string { return c.schema }

// ListTables returns base tables with their MS_Description
func (c *MSSQLCatalog) ListTables(ctx context.Context) ([]TableRow, error) {
	query := `
		SELECT
			t.TABLE_NAME,
			CAST(ep.value AS NVARCHAR(4000)) AS TABLE_COMMENT
		FROM INFORMATION_SCHEMA.TABLES t
		LEFT JOIN sys.extended_properties ep
			ON ep.major_id = OBJECT_ID(QUOTENAME(t.TABLE_SCHEMA) + '.' + QUOTENAME(t.TABLE_NAME))
			AND ep.minor_id = 0
			AND ep.class = 1
			AND ep.name = 'MS_Description'
		WHERE t.TABLE_SCHEMA = @schema
			AND t.TABLE_TYPE = 'BASE TABLE'
		ORDER BY t.TABLE_NAME
	`
	return selectRows[TableRow](ctx, c.client.GetDB(), opListTables, "", query, sql.Named("schema", c.schema))
}

// ListViews returns views with their definition text
func (c *MSSQLCatalog) ListViews(ctx context.Context) ([]ViewRow, error) {
	query := `
		SELECT
			v.name AS VIEW_NAME,
			OBJECT_DEFINITION(v.object_id) AS VIEW_DEFINITION,
			CAST(ep.value AS NVARCHAR(4000)) AS VIEW_COMMENT
		FROM sys.views v
		LEFT JOIN sys.extended_properties ep
			ON ep.major_id = v.object_id
			AND ep.minor_id = 0
			AND ep.class = 1
			AND ep.name = 'MS_Description'
		WHERE SCHEMA_NAME(v.schema_id) = @schema
		ORDER BY v.name
	`
	return selectRows[ViewRow](ctx, c.client.GetDB(), opListViews, "", query, sql.Named("schema", c.schema))
}

// ColumnInfo returns columns in ordinal order. Primary key membership comes
// from TABLE_CONSTRAINTS joined to KEY_COLUMN_USAGE; comments come from the
// MS_Description extended property of each column.
func (c *MSSQLCatalog) ColumnInfo(ctx context.Context, table string) ([]ColumnRow, error) {
	query := `
		SELECT
			c.COLUMN_NAME,
			c.DATA_TYPE,
			c.IS_NULLABLE,
			c.CHARACTER_MAXIMUM_LENGTH AS CHAR_LENGTH,
			c.NUMERIC_PRECISION,
			c.NUMERIC_SCALE,
			CASE WHEN pk.COLUMN_NAME IS NOT NULL THEN 'Y' ELSE 'N' END AS IS_PRIMARY_KEY,
			CAST(ep.value AS NVARCHAR(4000)) AS COLUMN_COMMENT
		FROM INFORMATION_SCHEMA.COLUMNS c
		LEFT JOIN (
			SELECT ku.TABLE_SCHEMA, ku.TABLE_NAME, ku.COLUMN_NAME
			FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
			JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE ku
				ON tc.CONSTRAINT_TYPE = 'PRIMARY KEY'
				AND tc.CONSTRAINT_NAME = ku.CONSTRAINT_NAME
				AND tc.TABLE_SCHEMA = ku.TABLE_SCHEMA
				AND tc.TABLE_NAME = ku.TABLE_NAME
		) pk
			ON c.TABLE_SCHEMA = pk.TABLE_SCHEMA
			AND c.TABLE_NAME = pk.TABLE_NAME
			AND c.COLUMN_NAME = pk.COLUMN_NAME
		LEFT JOIN sys.columns sc
			ON sc.name = c.COLUMN_NAME
			AND sc.object_id = OBJECT_ID(QUOTENAME(c.TABLE_SCHEMA) + '.' + QUOTENAME(c.TABLE_NAME))
		LEFT JOIN sys.extended_properties ep
			ON ep.major_id = sc.object_id
			AND ep.minor_id = sc.column_id
			AND ep.class = 1
			AND ep.name = 'MS_Description'
		WHERE c.TABLE_SCHEMA = @schema
			AND c.TABLE_NAME = @table
		ORDER BY c.ORDINAL_POSITION
	`
	return selectRows[ColumnRow](ctx, c.client.GetDB(), opColumnInfo, table, query,
		sql.Named("schema", c.schema), sql.Named("table", table))
}

// IndexInfo returns named indexes with key columns joined in key order
func (c *MSSQLCatalog) IndexInfo(ctx context.Context, table string) ([]IndexRow, error) {
	query := `
		SELECT
			i.name AS INDEX_NAME,
			ISNULL(STUFF((
				SELECT ', ' + col.name
				FROM sys.index_columns ic
				JOIN sys.columns col ON ic.object_id = col.object_id AND ic.column_id = col.column_id
				WHERE ic.object_id = i.object_id
					AND ic.index_id = i.index_id
					AND ic.key_ordinal > 0
				ORDER BY ic.key_ordinal
				FOR XML PATH(''), TYPE
			).value('.', 'NVARCHAR(MAX)'), 1, 2, ''), '') AS COLUMN_NAMES,
			CASE WHEN i.is_unique = 1 THEN 'Y' ELSE 'N' END AS IS_UNIQUE,
			CASE WHEN i.is_primary_key = 1 THEN 'Y' ELSE 'N' END AS IS_PRIMARY_KEY,
			i.type_desc AS INDEX_TYPE
		FROM sys.indexes i
		WHERE i.object_id = OBJECT_ID(QUOTENAME(@schema) + '.' + QUOTENAME(@table))
			AND i.name IS NOT NULL
		ORDER BY i.name
	`
	return selectRows[IndexRow](ctx, c.client.GetDB(), opIndexInfo, table, query,
		sql.Named("schema", c.schema), sql.Named("table", table))
}

// ForeignKeyInfo resolves each referencing column to its schema.table.column target
func (c *MSSQLCatalog) ForeignKeyInfo(ctx context.Context, table string) ([]ForeignKeyRow, error) {
	query := `
		SELECT
			COL_NAME(fkc.parent_object_id, fkc.parent_column_id) AS COLUMN_NAME,
			OBJECT_SCHEMA_NAME(fk.referenced_object_id) AS REF_OWNER,
			OBJECT_NAME(fk.referenced_object_id) AS REF_TABLE,
			COL_NAME(fkc.referenced_object_id, fkc.referenced_column_id) AS REF_COLUMN
		FROM sys.foreign_keys fk
		JOIN sys.foreign_key_columns fkc
			ON fk.object_id = fkc.constraint_object_id
		WHERE fk.parent_object_id = OBJECT_ID(QUOTENAME(@schema) + '.' + QUOTENAME(@table))
		ORDER BY fk.name, fkc.constraint_column_id
	`
	return selectRows[ForeignKeyRow](ctx, c.client.GetDB(), opFKInfo, table, query,
		sql.Named("schema", c.schema), sql.Named("table", table))
}
