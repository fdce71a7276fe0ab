package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tordrt/schemasheet/internal/logger"
	"github.com/tordrt/schemasheet/internal/schema"
)

// Extractor builds a schema snapshot from any Catalog
type Extractor struct {
	catalog Catalog
	log     *logger.Logger
	now     func() time.Time
}

// NewExtractor creates a new schema extractor. A nil logger discards output.
func NewExtractor(catalog Catalog, log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.Nop()
	}
	return &Extractor{
		catalog: catalog,
		log:     log,
		now:     time.Now,
	}
}

// ExtractSchema reads the table and view lists once, then every table in
// list order. If tables is non-empty only those tables are extracted;
// tables named in exclude are never queried.
// Any query failure discards everything read so far.
func (e *Extractor) ExtractSchema(ctx context.Context, tables, exclude []string) (*schema.Snapshot, error) {
	capturedAt := e.now()

	tableRows, err := e.catalog.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get table names: %w", err)
	}
	for _, name := range missingTables(tableRows, tables) {
		e.log.Warnf("table %s not found in %s", name, e.catalog.Owner())
	}
	tableRows = filterTableRows(tableRows, tables, exclude)

	viewRows, err := e.catalog.ListViews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get views: %w", err)
	}

	e.log.With().Int("tables", len(tableRows)).Int("views", len(viewRows)).Logger().
		Infof("found %d tables and %d views in %s", len(tableRows), len(viewRows), e.catalog.Owner())

	extracted := make([]schema.Table, 0, len(tableRows))
	for _, row := range tableRows {
		table, err := e.extractTable(ctx, row)
		if err != nil {
			return nil, fmt.Errorf("failed to extract table %s: %w", row.Name, err)
		}
		extracted = append(extracted, table)
	}

	return &schema.Snapshot{
		Dialect:    e.catalog.Dialect(),
		Tables:     extracted,
		Views:      NormalizeViews(e.catalog.Owner(), viewRows),
		CapturedAt: capturedAt,
	}, nil
}

// extractTable runs the per-table queries and normalizes their rows
func (e *Extractor) extractTable(ctx context.Context, row TableRow) (schema.Table, error) {
	e.log.Debugf("extracting table %s", row.Name)

	columns, err := e.catalog.ColumnInfo(ctx, row.Name)
	if err != nil {
		return schema.Table{}, fmt.Errorf("failed to extract columns: %w", err)
	}

	fks, err := e.catalog.ForeignKeyInfo(ctx, row.Name)
	if err != nil {
		return schema.Table{}, fmt.Errorf("failed to extract foreign keys: %w", err)
	}

	indexes, err := e.catalog.IndexInfo(ctx, row.Name)
	if err != nil {
		return schema.Table{}, fmt.Errorf("failed to extract indexes: %w", err)
	}

	ref := schema.EntityRef{Owner: e.catalog.Owner(), Name: row.Name}
	return NormalizeTable(e.catalog.Dialect(), ref, row.Comment.String, columns, fks, indexes), nil
}

// NormalizeTable turns raw catalog rows into a table description.
// Foreign keys are indexed by column name first so the column rows are
// walked exactly once.
func NormalizeTable(dialect schema.Dialect, ref schema.EntityRef, comment string, columnRows []ColumnRow, fkRows []ForeignKeyRow, indexRows []IndexRow) schema.Table {
	fkByColumn := make(map[string]schema.ForeignKeyTarget, len(fkRows))
	for _, fk := range fkRows {
		fkByColumn[fk.Column] = schema.ForeignKeyTarget{
			Table:  schema.EntityRef{Owner: fk.RefOwner, Name: fk.RefTable},
			Column: fk.RefColumn,
		}
	}

	columns := make([]schema.Column, 0, len(columnRows))
	for _, row := range columnRows {
		col := schema.Column{
			Table:        ref,
			Name:         row.Name,
			BaseType:     row.DataType,
			Length:       nullInt(row.CharLength.Int64, row.CharLength.Valid),
			Precision:    nullInt(row.Precision.Int64, row.Precision.Valid),
			Scale:        nullInt(row.Scale.Int64, row.Scale.Valid),
			Nullable:     isYes(row.IsNullable),
			IsPrimaryKey: isYes(row.IsPrimaryKey),
			Comment:      row.Comment.String,
		}
		col.DisplayType = schema.FormatType(col.BaseType, col.Length, col.Precision, col.Scale, dialect)
		if target, ok := fkByColumn[row.Name]; ok {
			col.ForeignKey = &target
		}
		columns = append(columns, col)
	}

	indexes := make([]schema.Index, 0, len(indexRows))
	for _, row := range indexRows {
		idx := schema.Index{
			Table:    ref,
			Name:     row.Name,
			Columns:  splitColumnList(row.Columns),
			IsUnique: isYes(row.IsUnique),
			Kind:     row.Kind.String,
		}
		if row.IsPrimaryKey.Valid {
			isPK := isYes(row.IsPrimaryKey.String)
			idx.IsPrimaryKey = &isPK
		}
		indexes = append(indexes, idx)
	}

	return schema.Table{
		Ref:     ref,
		Columns: columns,
		Indexes: indexes,
		Comment: comment,
	}
}

// NormalizeViews converts view rows, keeping catalog order
func NormalizeViews(owner string, rows []ViewRow) []schema.View {
	views := make([]schema.View, 0, len(rows))
	for _, row := range rows {
		views = append(views, schema.View{
			Ref:        schema.EntityRef{Owner: owner, Name: row.Name},
			Comment:    row.Comment.String,
			Definition: row.Definition.String,
		})
	}
	return views
}

// isYes normalizes the catalog literals YES/NO and Y/N
func isYes(v string) bool {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "YES", "Y":
		return true
	default:
		return false
	}
}

func nullInt(v int64, valid bool) *int64 {
	if !valid {
		return nil
	}
	return &v
}

// splitColumnList splits the server-side comma-joined key list
func splitColumnList(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return []string{}
	}
	parts := strings.Split(joined, ",")
	columns := make([]string, 0, len(parts))
	for _, p := range parts {
		columns = append(columns, strings.TrimSpace(p))
	}
	return columns
}

// filterTableRows keeps the requested tables, or all when none are
// requested, minus the excluded ones, in catalog order
func filterTableRows(rows []TableRow, requested, exclude []string) []TableRow {
	if len(requested) == 0 && len(exclude) == 0 {
		return rows
	}

	wanted := nameSet(requested)
	skipped := nameSet(exclude)

	filtered := make([]TableRow, 0, len(rows))
	for _, row := range rows {
		if len(wanted) > 0 && !wanted[row.Name] {
			continue
		}
		if skipped[row.Name] {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// missingTables lists requested names the catalog does not have
func missingTables(rows []TableRow, requested []string) []string {
	if len(requested) == 0 {
		return nil
	}

	present := make(map[string]bool, len(rows))
	for _, row := range rows {
		present[row.Name] = true
	}

	var missing []string
	for _, name := range requested {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
