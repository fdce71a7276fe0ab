package formatter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/schemasheet/internal/schema"
)

func testSnapshot() *schema.Snapshot {
	orders := schema.EntityRef{Owner: "dbo", Name: "ORDERS"}
	return &schema.Snapshot{
		Dialect: schema.DialectMSSQL,
		Tables: []schema.Table{{
			Ref:     orders,
			Comment: "Customer orders",
			Columns: []schema.Column{
				{Table: orders, Name: "ID", DisplayType: "int", IsPrimaryKey: true},
				{Table: orders, Name: "CUSTOMER_ID", DisplayType: "int", Nullable: true, ForeignKey: &schema.ForeignKeyTarget{
					Table:  schema.EntityRef{Owner: "dbo", Name: "CUSTOMERS"},
					Column: "ID",
				}},
				{Table: orders, Name: "NOTE", DisplayType: "nvarchar(MAX)", Nullable: true, Comment: "free text"},
			},
			Indexes: []schema.Index{
				{Table: orders, Name: "PK_ORDERS", Columns: []string{"ID"}, IsUnique: true},
			},
		}},
		Views: []schema.View{{Ref: schema.EntityRef{Owner: "dbo", Name: "V_ORDERS"}, Comment: "Open orders"}},
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(&buf).Format(testSnapshot()))

	want := `TABLE ORDERS (PK: ID) -- Customer orders
  ID: int NOT NULL
  CUSTOMER_ID: int → dbo.CUSTOMERS.ID
  NOTE: nvarchar(MAX) -- free text

  INDEXES:
    PK_ORDERS (ID) UNIQUE

VIEW V_ORDERS -- Open orders
`
	assert.Equal(t, want, buf.String())
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter(&buf).Format(testSnapshot()))

	out := buf.String()
	assert.Contains(t, out, "# Database Schema\n")
	assert.Contains(t, out, "## ORDERS\n\nCustomer orders\n")
	assert.Contains(t, out, "- **ID:** int, PK, not null\n")
	assert.Contains(t, out, "- **CUSTOMER_ID:** int, FK → dbo.CUSTOMERS.ID\n")
	assert.Contains(t, out, "- PK_ORDERS: ID (unique)\n")
	assert.Contains(t, out, "- **V_ORDERS:** Open orders\n")
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  string
		want    any
		wantErr bool
	}{
		{format: "", want: &TextFormatter{}},
		{format: "text", want: &TextFormatter{}},
		{format: "markdown", want: &MarkdownFormatter{}},
		{format: "md", want: &MarkdownFormatter{}},
		{format: "html", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := New(tt.format, &bytes.Buffer{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, f)
		})
	}
}
