package common

import (
	"fmt"
	"strings"

	"github.com/Rana718/mcpseed/internal/types"
)

// TypeMapper renders the dialect spelling of a column, including any inline
// key modifiers (e.g. "SERIAL PRIMARY KEY").
type TypeMapper func(col types.SchemaColumn) string

// BuildCreateTableSQL renders an idempotent CREATE TABLE statement. Foreign
// keys are emitted as table-level constraints because MySQL ignores inline
// REFERENCES clauses.
func BuildCreateTableSQL(table types.SchemaTable, quote func(string) string, mapType TypeMapper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", quote(table.Name))

	var lines []string
	for _, col := range table.Columns {
		line := fmt.Sprintf("  %s %s", quote(col.Name), mapType(col))
		if !col.Nullable && !col.IsPrimary {
			line += " NOT NULL"
		}
		if col.IsUnique && !col.IsPrimary {
			line += " UNIQUE"
		}
		lines = append(lines, line)
	}

	for _, col := range table.Columns {
		if col.ForeignKeyTable == "" {
			continue
		}
		line := fmt.Sprintf("  FOREIGN KEY (%s) REFERENCES %s(%s)",
			quote(col.Name), quote(col.ForeignKeyTable), quote(col.ForeignKeyColumn))
		if col.OnDeleteAction != "" {
			line += " ON DELETE " + col.OnDeleteAction
		}
		lines = append(lines, line)
	}

	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n)")
	return b.String()
}

// NumericSpec renders the "(p,s)" suffix for numeric columns, or "".
func NumericSpec(col types.SchemaColumn) string {
	if col.Precision <= 0 {
		return ""
	}
	return fmt.Sprintf("(%d,%d)", col.Precision, col.Scale)
}
