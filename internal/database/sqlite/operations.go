package sqlite

import (
	"strings"

	"github.com/Rana718/mcpseed/internal/database/common"
	"github.com/Rana718/mcpseed/internal/types"
)

func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (s *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	return common.BuildCreateTableSQL(table, quote, s.FormatColumnType)
}

func (s *Adapter) FormatColumnType(column types.SchemaColumn) string {
	switch column.Type {
	case types.TypeSerial:
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	case types.TypeInt:
		if column.IsPrimary {
			return "INTEGER PRIMARY KEY"
		}
		return "INTEGER"
	case types.TypeDate:
		return "DATE"
	case types.TypeNumeric:
		return "NUMERIC" + common.NumericSpec(column)
	default:
		return "TEXT"
	}
}
