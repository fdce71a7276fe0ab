package db

import (
	"context"
	"database/sql"

	"github.com/tordrt/schemasheet/internal/schema"
)

// OracleCatalog reads Oracle metadata through the ALL_* data dictionary views
type OracleCatalog struct {
	client *OracleClient
	owner  string
}

// NewOracleCatalog creates a catalog reader scoped to one owner. Oracle
// stores unquoted identifiers in upper case, so owner should be upper case.
func NewOracleCatalog(client *OracleClient, owner string) *OracleCatalog {
	return &OracleCatalog{
		client: client,
		owner:  owner,
	}
}

// Dialect reports Oracle
func (c *OracleCatalog) Dialect() schema.Dialect { return schema.DialectOracle }

// Owner returns the owner being read
func (c *OracleCatalog) Owner() string { return c.owner }

// ListTables returns the owner's tables with their comments
func (c *OracleCatalog) ListTables(ctx context.Context) ([]TableRow, error) {
	query := `
		SELECT
			t.TABLE_NAME AS TABLE_NAME,
			tc.COMMENTS AS TABLE_COMMENT
		FROM ALL_TABLES t
		LEFT JOIN ALL_TAB_COMMENTS tc
			ON t.TABLE_NAME = tc.TABLE_NAME
			AND t.OWNER = tc.OWNER
		WHERE t.OWNER = :owner
		ORDER BY t.TABLE_NAME
	`
	return selectRows[TableRow](ctx, c.client.GetDB(), opListTables, "", query, sql.Named("owner", c.owner))
}

// ListViews returns the owner's views with definition text and comments
func (c *OracleCatalog) ListViews(ctx context.Context) ([]ViewRow, error) {
	query := `
		SELECT
			v.VIEW_NAME AS VIEW_NAME,
			v.TEXT AS VIEW_DEFINITION,
			tc.COMMENTS AS VIEW_COMMENT
		FROM ALL_VIEWS v
		LEFT JOIN ALL_TAB_COMMENTS tc
			ON v.VIEW_NAME = tc.TABLE_NAME
			AND v.OWNER = tc.OWNER
		WHERE v.OWNER = :owner
		ORDER BY v.VIEW_NAME
	`
	return selectRows[ViewRow](ctx, c.client.GetDB(), opListViews, "", query, sql.Named("owner", c.owner))
}

// ColumnInfo returns columns in COLUMN_ID order. Primary key membership comes
// from constraints of type P joined through ALL_CONS_COLUMNS.
func (c *OracleCatalog) ColumnInfo(ctx context.Context, table string) ([]ColumnRow, error) {
	query := `
		SELECT
			c.COLUMN_NAME AS COLUMN_NAME,
			c.DATA_TYPE AS DATA_TYPE,
			c.NULLABLE AS IS_NULLABLE,
			c.CHAR_LENGTH AS CHAR_LENGTH,
			c.DATA_PRECISION AS NUMERIC_PRECISION,
			c.DATA_SCALE AS NUMERIC_SCALE,
			CASE WHEN p.COLUMN_NAME IS NOT NULL THEN 'Y' ELSE 'N' END AS IS_PRIMARY_KEY,
			cc.COMMENTS AS COLUMN_COMMENT
		FROM ALL_TAB_COLUMNS c
		LEFT JOIN (
			SELECT cols.TABLE_NAME, cols.COLUMN_NAME
			FROM ALL_CONSTRAINTS cons
			JOIN ALL_CONS_COLUMNS cols
				ON cons.CONSTRAINT_NAME = cols.CONSTRAINT_NAME
				AND cons.OWNER = cols.OWNER
			WHERE cons.CONSTRAINT_TYPE = 'P'
				AND cons.OWNER = :owner
				AND cons.TABLE_NAME = :table_name
		) p
			ON c.TABLE_NAME = p.TABLE_NAME
			AND c.COLUMN_NAME = p.COLUMN_NAME
		LEFT JOIN ALL_COL_COMMENTS cc
			ON c.TABLE_NAME = cc.TABLE_NAME
			AND c.COLUMN_NAME = cc.COLUMN_NAME
			AND c.OWNER = cc.OWNER
		WHERE c.TABLE_NAME = :table_name
			AND c.OWNER = :owner
		ORDER BY c.COLUMN_ID
	`
	return selectRows[ColumnRow](ctx, c.client.GetDB(), opColumnInfo, table, query,
		sql.Named("owner", c.owner), sql.Named("table_name", table))
}

// IndexInfo returns indexes with LISTAGG-joined key columns. The data
// dictionary has no primary key flag on indexes, so IS_PRIMARY_KEY is absent.
func (c *OracleCatalog) IndexInfo(ctx context.Context, table string) ([]IndexRow, error) {
	query := `
		SELECT
			i.INDEX_NAME AS INDEX_NAME,
			LISTAGG(ic.COLUMN_NAME, ', ') WITHIN GROUP (ORDER BY ic.COLUMN_POSITION) AS COLUMN_NAMES,
			CASE WHEN i.UNIQUENESS = 'UNIQUE' THEN 'Y' ELSE 'N' END AS IS_UNIQUE,
			i.INDEX_TYPE AS INDEX_TYPE
		FROM ALL_INDEXES i
		JOIN ALL_IND_COLUMNS ic
			ON i.INDEX_NAME = ic.INDEX_NAME
			AND i.TABLE_NAME = ic.TABLE_NAME
			AND i.OWNER = ic.INDEX_OWNER
		WHERE i.TABLE_NAME = :table_name
			AND i.OWNER = :owner
		GROUP BY i.INDEX_NAME, i.UNIQUENESS, i.INDEX_TYPE
		ORDER BY i.INDEX_NAME
	`
	return selectRows[IndexRow](ctx, c.client.GetDB(), opIndexInfo, table, query,
		sql.Named("owner", c.owner), sql.Named("table_name", table))
}

// ForeignKeyInfo follows constraints of type R to the referenced constraint's
// columns, pairing multi-column keys by position.
func (c *OracleCatalog) ForeignKeyInfo(ctx context.Context, table string) ([]ForeignKeyRow, error) {
	query := `
		SELECT
			cols.COLUMN_NAME AS COLUMN_NAME,
			cons.R_OWNER AS REF_OWNER,
			rcols.TABLE_NAME AS REF_TABLE,
			rcols.COLUMN_NAME AS REF_COLUMN
		FROM ALL_CONSTRAINTS cons
		JOIN ALL_CONS_COLUMNS cols
			ON cons.CONSTRAINT_NAME = cols.CONSTRAINT_NAME
			AND cons.OWNER = cols.OWNER
		JOIN ALL_CONS_COLUMNS rcols
			ON cons.R_CONSTRAINT_NAME = rcols.CONSTRAINT_NAME
			AND cons.R_OWNER = rcols.OWNER
			AND cols.POSITION = rcols.POSITION
		WHERE cons.CONSTRAINT_TYPE = 'R'
			AND cons.OWNER = :owner
			AND cons.TABLE_NAME = :table_name
		ORDER BY cons.CONSTRAINT_NAME, cols.POSITION
	`
	return selectRows[ForeignKeyRow](ctx, c.client.GetDB(), opFKInfo, table, query,
		sql.Named("owner", c.owner), sql.Named("table_name", table))
}
