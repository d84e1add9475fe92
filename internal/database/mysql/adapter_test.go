package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Rana718/mcpseed/internal/database/common"
	"github.com/Rana718/mcpseed/internal/types"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWithDB(db), mock
}

func TestDatabaseExists(t *testing.T) {
	m, mock := newMockAdapter(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM information_schema.SCHEMATA WHERE SCHEMA_NAME = \?`).
		WithArgs("mcp1").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM information_schema.SCHEMATA WHERE SCHEMA_NAME = \?`).
		WithArgs("mcp2").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	ok, err := m.DatabaseExists(ctx, "mcp1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = m.DatabaseExists(ctx, "mcp2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDatabase(t *testing.T) {
	m, mock := newMockAdapter(t)
	ctx := context.Background()

	mock.ExpectExec("CREATE DATABASE IF NOT EXISTS `mcp3` CHARACTER SET utf8mb4").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, m.CreateDatabase(ctx, "mcp3"))

	assert.Error(t, m.CreateDatabase(ctx, "mcp3`; DROP DATABASE x"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBeginInsertConstraintViolation(t *testing.T) {
	m, mock := newMockAdapter(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `orders`").
		WithArgs(int64(99), 3).
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})
	mock.ExpectRollback()

	tx, err := m.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.Insert(ctx, "orders", "order_id", []string{"customer_id", "quantity"}, []interface{}{int64(99), 3})
	assert.ErrorIs(t, err, common.ErrConstraintViolation)
	require.NoError(t, tx.Rollback(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsConstraintViolation(t *testing.T) {
	assert.True(t, isConstraintViolation(&mysql.MySQLError{Number: 1062}))
	assert.True(t, isConstraintViolation(&mysql.MySQLError{Number: 1048}))
	assert.False(t, isConstraintViolation(&mysql.MySQLError{Number: 1146}))
	assert.False(t, isConstraintViolation(assert.AnError))
}

func TestGenerateCreateTableSQL(t *testing.T) {
	students := types.SchemaTable{Name: "students", Columns: []types.SchemaColumn{
		types.Serial("student_id"),
		types.Text("student_number").Unique(),
		types.Numeric("amount", 0, 0),
	}}
	want := "CREATE TABLE IF NOT EXISTS `students` (\n" +
		"  `student_id` INT AUTO_INCREMENT PRIMARY KEY,\n" +
		"  `student_number` VARCHAR(64) UNIQUE,\n" +
		"  `amount` DECIMAL(15,2)\n" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"
	assert.Equal(t, want, New().GenerateCreateTableSQL(students))
}
