package mysql

import (
	"strings"

	"github.com/Rana718/mcpseed/internal/database/common"
	"github.com/Rana718/mcpseed/internal/types"
)

func quote(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (m *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	return common.BuildCreateTableSQL(table, quote, m.FormatColumnType) + " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"
}

func (m *Adapter) FormatColumnType(column types.SchemaColumn) string {
	switch column.Type {
	case types.TypeSerial:
		return "INT AUTO_INCREMENT PRIMARY KEY"
	case types.TypeInt:
		if column.IsPrimary {
			return "INT PRIMARY KEY"
		}
		return "INT"
	case types.TypeDate:
		return "DATE"
	case types.TypeNumeric:
		if spec := common.NumericSpec(column); spec != "" {
			return "DECIMAL" + spec
		}
		// MySQL's bare DECIMAL is DECIMAL(10,0).
		return "DECIMAL(15,2)"
	default:
		// TEXT cannot carry a UNIQUE index without a prefix length.
		if column.IsUnique {
			return "VARCHAR(64)"
		}
		return "TEXT"
	}
}
