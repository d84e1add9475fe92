package postgres

import (
	"github.com/Rana718/mcpseed/internal/database/common"
	"github.com/Rana718/mcpseed/internal/types"
	"github.com/jackc/pgx/v5"
)

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func (p *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	return common.BuildCreateTableSQL(table, quote, p.FormatColumnType)
}

func (p *Adapter) FormatColumnType(column types.SchemaColumn) string {
	switch column.Type {
	case types.TypeSerial:
		return "SERIAL PRIMARY KEY"
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
