package memory

import (
	"context"
	"fmt"

	"github.com/Rana718/mcpseed/internal/database/common"
	"github.com/Rana718/mcpseed/internal/types"
)

type Tx struct {
	server *Server
	name   string
	state  *dbState
	done   bool
}

func (t *Tx) check() error {
	if t.done {
		return fmt.Errorf("transaction already closed")
	}
	return nil
}

func (t *Tx) table(name string) (*table, error) {
	tbl, ok := t.state.tables[name]
	if !ok {
		return nil, fmt.Errorf("relation %q does not exist", name)
	}
	return tbl, nil
}

func (t *Tx) CreateTable(ctx context.Context, def types.SchemaTable) error {
	if err := t.check(); err != nil {
		return err
	}
	if err := common.CheckIdentifiers(def.Name); err != nil {
		return err
	}
	if _, ok := t.state.tables[def.Name]; ok {
		return nil
	}
	for _, ref := range def.Dependencies() {
		if _, ok := t.state.tables[ref]; !ok {
			return fmt.Errorf("failed to create table %s: referenced relation %q does not exist", def.Name, ref)
		}
	}
	t.state.tables[def.Name] = &table{def: def, index: make(map[int64]int), nextID: 1}
	return nil
}

func (t *Tx) Count(ctx context.Context, name string) (int64, error) {
	if err := t.check(); err != nil {
		return 0, err
	}
	tbl, err := t.table(name)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", name, err)
	}
	return int64(len(tbl.rows)), nil
}

func (t *Tx) Insert(ctx context.Context, name, pk string, columns []string, values []interface{}) (int64, error) {
	if err := t.check(); err != nil {
		return 0, err
	}
	if len(columns) != len(values) {
		return 0, fmt.Errorf("failed to insert into %s: %d columns but %d values", name, len(columns), len(values))
	}
	tbl, err := t.table(name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", name, err)
	}

	row := make(map[string]interface{}, len(columns))
	for i, col := range columns {
		def, ok := tbl.def.Column(col)
		if !ok {
			return 0, fmt.Errorf("failed to insert into %s: column %q does not exist", name, col)
		}
		if err := t.checkValue(tbl, def, values[i]); err != nil {
			return 0, fmt.Errorf("%w: insert into %s: %v", common.ErrConstraintViolation, name, err)
		}
		row[col] = values[i]
	}
	for _, def := range tbl.def.Columns {
		if _, ok := row[def.Name]; !ok && !def.Nullable && !def.IsPrimary {
			return 0, fmt.Errorf("%w: insert into %s: null value in column %q", common.ErrConstraintViolation, name, def.Name)
		}
	}

	id := tbl.nextID
	tbl.nextID++
	t.state.seq++
	if pk != "" {
		row[pk] = id
	}
	tbl.index[id] = len(tbl.rows)
	tbl.rows = append(tbl.rows, Row{ID: id, Seq: t.state.seq, Values: row})
	return id, nil
}

func (t *Tx) checkValue(tbl *table, def types.SchemaColumn, value interface{}) error {
	if value == nil {
		if !def.Nullable {
			return fmt.Errorf("null value in column %q", def.Name)
		}
		return nil
	}
	if def.ForeignKeyTable != "" {
		ref, err := t.table(def.ForeignKeyTable)
		if err != nil {
			return err
		}
		id, ok := asInt64(value)
		if !ok {
			return fmt.Errorf("column %q expects an integer key, got %T", def.Name, value)
		}
		if _, ok := ref.index[id]; !ok {
			return fmt.Errorf("key (%s)=(%d) is not present in table %q", def.Name, id, def.ForeignKeyTable)
		}
	}
	if def.IsUnique {
		for _, r := range tbl.rows {
			if r.Values[def.Name] == value {
				return fmt.Errorf("duplicate key value violates unique column %q", def.Name)
			}
		}
	}
	return nil
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func (t *Tx) RandomID(ctx context.Context, name, pk string) (int64, error) {
	if err := t.check(); err != nil {
		return 0, err
	}
	tbl, err := t.table(name)
	if err != nil {
		return 0, fmt.Errorf("failed to pick random row from %s: %w", name, err)
	}
	if len(tbl.rows) == 0 {
		return 0, fmt.Errorf("failed to pick random row from %s: no rows", name)
	}
	return tbl.rows[t.server.intn(len(tbl.rows))].ID, nil
}

func (t *Tx) Commit(ctx context.Context) error {
	if err := t.check(); err != nil {
		return err
	}
	t.done = true
	t.server.replace(t.name, t.state)
	return nil
}

func (t *Tx) Rollback(ctx context.Context) error {
	t.done = true
	t.state = nil
	return nil
}
