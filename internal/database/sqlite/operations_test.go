package sqlite

import (
	"testing"

	"github.com/Rana718/mcpseed/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestGenerateCreateTableSQL(t *testing.T) {
	methods := types.SchemaTable{Name: "payment_methods", Columns: []types.SchemaColumn{
		types.Serial("method_id"),
		types.References("transaction_id", "transactions", "transaction_id"),
		types.Numeric("fee", 10, 2),
	}}
	want := `CREATE TABLE IF NOT EXISTS "payment_methods" (` + "\n" +
		`  "method_id" INTEGER PRIMARY KEY AUTOINCREMENT,` + "\n" +
		`  "transaction_id" INTEGER,` + "\n" +
		`  "fee" NUMERIC(10,2),` + "\n" +
		`  FOREIGN KEY ("transaction_id") REFERENCES "transactions"("transaction_id") ON DELETE CASCADE` + "\n" +
		`)`
	assert.Equal(t, want, New().GenerateCreateTableSQL(methods))
}

func TestQuoteEscapes(t *testing.T) {
	assert.Equal(t, `"a""b"`, quote(`a"b`))
}
