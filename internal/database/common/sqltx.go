package common

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/mcpseed/internal/types"
)

// Dialect carries what differs between the database/sql backed adapters.
type Dialect struct {
	QB           squirrel.StatementBuilderType
	Quote        func(string) string
	RandomFunc   string // e.g. RANDOM() or RAND()
	CreateTable  func(types.SchemaTable) string
	IsConstraint func(error) bool
}

// SQLTx is a seeding transaction over database/sql. Identifiers come from
// the domain catalogs and are validated before they are interpolated.
type SQLTx struct {
	tx      *sql.Tx
	dialect Dialect
}

func NewSQLTx(tx *sql.Tx, dialect Dialect) *SQLTx {
	return &SQLTx{tx: tx, dialect: dialect}
}

func (t *SQLTx) CreateTable(ctx context.Context, table types.SchemaTable) error {
	if err := CheckIdentifiers(table.Name); err != nil {
		return err
	}
	if _, err := t.tx.ExecContext(ctx, t.dialect.CreateTable(table)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table.Name, err)
	}
	return nil
}

func (t *SQLTx) Count(ctx context.Context, table string) (int64, error) {
	if err := CheckIdentifiers(table); err != nil {
		return 0, err
	}
	query, args, err := t.dialect.QB.Select("COUNT(*)").From(t.dialect.Quote(table)).ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := t.tx.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

func (t *SQLTx) Insert(ctx context.Context, table, pk string, columns []string, values []interface{}) (int64, error) {
	if err := CheckIdentifiers(append([]string{table}, columns...)...); err != nil {
		return 0, err
	}
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = t.dialect.Quote(col)
	}
	query, args, err := t.dialect.QB.Insert(t.dialect.Quote(table)).Columns(quoted...).Values(values...).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, Classify(fmt.Errorf("failed to insert into %s: %w", table, err), t.dialect.IsConstraint)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read generated %s.%s: %w", table, pk, err)
	}
	return id, nil
}

func (t *SQLTx) RandomID(ctx context.Context, table, pk string) (int64, error) {
	if err := CheckIdentifiers(table, pk); err != nil {
		return 0, err
	}
	query, args, err := t.dialect.QB.Select(t.dialect.Quote(pk)).
		From(t.dialect.Quote(table)).
		OrderBy(t.dialect.RandomFunc).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := t.tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to pick random row from %s: %w", table, err)
	}
	return id, nil
}

func (t *SQLTx) Commit(ctx context.Context) error {
	return t.tx.Commit()
}

func (t *SQLTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}
