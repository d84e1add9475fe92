package common

import (
	"context"

	"github.com/Rana718/mcpseed/internal/types"
)

// Tx is one open unit of work against a target database.
type Tx interface {
	CreateTable(ctx context.Context, table types.SchemaTable) error
	Count(ctx context.Context, table string) (int64, error)
	// Insert adds one row and returns its generated primary key.
	Insert(ctx context.Context, table, pk string, columns []string, values []interface{}) (int64, error)
	// RandomID selects the primary key of one uniformly random row.
	RandomID(ctx context.Context, table, pk string) (int64, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
