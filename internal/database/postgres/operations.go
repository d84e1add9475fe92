package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/mcpseed/internal/database/common"
	"github.com/Rana718/mcpseed/internal/types"
	"github.com/jackc/pgx/v5"
)

type Tx struct {
	tx      pgx.Tx
	qb      squirrel.StatementBuilderType
	adapter *Adapter
}

func (t *Tx) CreateTable(ctx context.Context, table types.SchemaTable) error {
	if err := common.CheckIdentifiers(table.Name); err != nil {
		return err
	}
	if _, err := t.tx.Exec(ctx, t.adapter.GenerateCreateTableSQL(table)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table.Name, err)
	}
	return nil
}

func (t *Tx) Count(ctx context.Context, table string) (int64, error) {
	if err := common.CheckIdentifiers(table); err != nil {
		return 0, err
	}
	query, args, err := t.qb.Select("COUNT(*)").From(quote(table)).ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := t.tx.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

func (t *Tx) Insert(ctx context.Context, table, pk string, columns []string, values []interface{}) (int64, error) {
	if err := common.CheckIdentifiers(append([]string{table, pk}, columns...)...); err != nil {
		return 0, err
	}
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quote(col)
	}
	query, args, err := t.qb.Insert(quote(table)).
		Columns(quoted...).
		Values(values...).
		Suffix("RETURNING " + quote(pk)).
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := t.tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, common.Classify(fmt.Errorf("failed to insert into %s: %w", table, err), isConstraintViolation)
	}
	return id, nil
}

func (t *Tx) RandomID(ctx context.Context, table, pk string) (int64, error) {
	if err := common.CheckIdentifiers(table, pk); err != nil {
		return 0, err
	}
	query, args, err := t.qb.Select(quote(pk)).From(quote(table)).OrderBy("RANDOM()").Limit(1).ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := t.tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to pick random row from %s: %w", table, err)
	}
	return id, nil
}

func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return common.Classify(fmt.Errorf("failed to commit: %w", err), isConstraintViolation)
	}
	return nil
}

func (t *Tx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err == pgx.ErrTxClosed {
		return nil
	}
	return err
}
