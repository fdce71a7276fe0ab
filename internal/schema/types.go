package schema

import "time"

// Dialect identifies the catalog flavour a snapshot was read from
type Dialect string

const (
	DialectMSSQL  Dialect = "mssql"
	DialectOracle Dialect = "oracle"
)

// EntityRef identifies a table or view within one catalog snapshot
type EntityRef struct {
	Owner string
	Name  string
}

// String returns the owner-qualified name
func (r EntityRef) String() string {
	if r.Owner == "" {
		return r.Name
	}
	return r.Owner + "." + r.Name
}

// ForeignKeyTarget is the column a foreign key column points at
type ForeignKeyTarget struct {
	Table  EntityRef
	Column string
}

// String returns the OWNER.TABLE.COLUMN form used in the workbook
func (t ForeignKeyTarget) String() string {
	return t.Table.String() + "." + t.Column
}

// Column represents a table column
type Column struct {
	Table        EntityRef
	Name         string
	BaseType     string
	Length       *int64
	Precision    *int64
	Scale        *int64
	DisplayType  string
	Nullable     bool
	IsPrimaryKey bool
	ForeignKey   *ForeignKeyTarget
	Comment      string
}

// IsForeignKey reports whether the column references another table
func (c Column) IsForeignKey() bool {
	return c.ForeignKey != nil
}

// Index represents a database index
type Index struct {
	Table    EntityRef
	Name     string
	Columns  []string
	IsUnique bool
	// IsPrimaryKey is nil when the dialect does not report it
	IsPrimaryKey *bool
	Kind         string
}

// View represents a database view
type View struct {
	Ref        EntityRef
	Comment    string
	Definition string
}

// Table represents a database table
type Table struct {
	Ref     EntityRef
	Columns []Column
	Indexes []Index
	Comment string
}

// Snapshot is one consistent read of catalog metadata
type Snapshot struct {
	Dialect    Dialect
	Tables     []Table
	Views      []View
	CapturedAt time.Time
}
