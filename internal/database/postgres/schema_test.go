package postgres

import (
	"testing"

	"github.com/Rana718/mcpseed/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestGenerateCreateTableSQL(t *testing.T) {
	students := types.SchemaTable{Name: "students", Columns: []types.SchemaColumn{
		types.Serial("student_id"),
		types.Text("student_number").Unique(),
		types.Date("admission_date"),
		types.Numeric("gpa", 3, 2),
	}}
	want := `CREATE TABLE IF NOT EXISTS "students" (` + "\n" +
		`  "student_id" SERIAL PRIMARY KEY,` + "\n" +
		`  "student_number" TEXT UNIQUE,` + "\n" +
		`  "admission_date" DATE,` + "\n" +
		`  "gpa" NUMERIC(3,2)` + "\n" +
		`)`
	assert.Equal(t, want, New().GenerateCreateTableSQL(students))
}

func TestGenerateCreateTableSQLForeignKey(t *testing.T) {
	grades := types.SchemaTable{Name: "grades", Columns: []types.SchemaColumn{
		types.Serial("grade_id"),
		types.References("student_id", "students", "student_id"),
	}}
	sql := New().GenerateCreateTableSQL(grades)
	assert.Contains(t, sql, `"student_id" INTEGER,`)
	assert.Contains(t, sql, `FOREIGN KEY ("student_id") REFERENCES "students"("student_id") ON DELETE CASCADE`)
}

func TestFormatColumnType(t *testing.T) {
	p := New()
	assert.Equal(t, "NUMERIC", p.FormatColumnType(types.Numeric("amount", 0, 0)))
	assert.Equal(t, "TEXT", p.FormatColumnType(types.Text("name")))
	assert.Equal(t, "INTEGER PRIMARY KEY", p.FormatColumnType(types.SchemaColumn{Name: "id", Type: types.TypeInt, IsPrimary: true}))
}
