package types

import "fmt"

// ColumnType is a dialect-neutral column type. Each database adapter maps it
// to its own DDL spelling.
type ColumnType string

const (
	TypeSerial  ColumnType = "serial"
	TypeText    ColumnType = "text"
	TypeInt     ColumnType = "int"
	TypeDate    ColumnType = "date"
	TypeNumeric ColumnType = "numeric"
)

type SchemaTable struct {
	Name    string
	Columns []SchemaColumn
}

type SchemaColumn struct {
	Name             string
	Type             ColumnType
	Precision        int // numeric only, 0 means unconstrained
	Scale            int
	Nullable         bool
	IsPrimary        bool
	IsUnique         bool
	IsAutoIncrement  bool
	ForeignKeyTable  string
	ForeignKeyColumn string
	OnDeleteAction   string
}

// PrimaryKey returns the name of the primary key column, or "" if the table
// has none.
func (t SchemaTable) PrimaryKey() string {
	for _, col := range t.Columns {
		if col.IsPrimary {
			return col.Name
		}
	}
	return ""
}

// Dependencies lists the tables referenced by foreign keys, excluding
// self-references, in column order without duplicates.
func (t SchemaTable) Dependencies() []string {
	var deps []string
	seen := make(map[string]bool)
	for _, col := range t.Columns {
		ref := col.ForeignKeyTable
		if ref == "" || ref == t.Name || seen[ref] {
			continue
		}
		seen[ref] = true
		deps = append(deps, ref)
	}
	return deps
}

// Column looks up a column by name.
func (t SchemaTable) Column(name string) (SchemaColumn, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return SchemaColumn{}, false
}

// Serial declares an auto-increment integer primary key.
func Serial(name string) SchemaColumn {
	return SchemaColumn{Name: name, Type: TypeSerial, IsPrimary: true, IsAutoIncrement: true}
}

func Text(name string) SchemaColumn {
	return SchemaColumn{Name: name, Type: TypeText, Nullable: true}
}

func Int(name string) SchemaColumn {
	return SchemaColumn{Name: name, Type: TypeInt, Nullable: true}
}

func Date(name string) SchemaColumn {
	return SchemaColumn{Name: name, Type: TypeDate, Nullable: true}
}

func Numeric(name string, precision, scale int) SchemaColumn {
	return SchemaColumn{Name: name, Type: TypeNumeric, Precision: precision, Scale: scale, Nullable: true}
}

// References declares an integer foreign key that cascades on delete.
func References(name, table, column string) SchemaColumn {
	return SchemaColumn{
		Name:             name,
		Type:             TypeInt,
		Nullable:         true,
		ForeignKeyTable:  table,
		ForeignKeyColumn: column,
		OnDeleteAction:   "CASCADE",
	}
}

// Unique marks the column UNIQUE.
func (c SchemaColumn) Unique() SchemaColumn {
	c.IsUnique = true
	return c
}

func (c SchemaColumn) String() string {
	if c.Type == TypeNumeric && c.Precision > 0 {
		return fmt.Sprintf("%s %s(%d,%d)", c.Name, c.Type, c.Precision, c.Scale)
	}
	return fmt.Sprintf("%s %s", c.Name, c.Type)
}
