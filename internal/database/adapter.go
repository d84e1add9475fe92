package database

import (
	"context"

	"github.com/Rana718/mcpseed/internal/database/common"
	"github.com/Rana718/mcpseed/internal/types"
)

type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// Provisioning. Runs outside any transaction.
	DatabaseExists(ctx context.Context, name string) (bool, error)
	CreateDatabase(ctx context.Context, name string) error

	// Begin opens the single unit of work a domain is seeded in.
	Begin(ctx context.Context) (Tx, error)

	// TruncateAll empties every table of the connected database with
	// cascading delete, as one administrative operation.
	TruncateAll(ctx context.Context) error
}

// Tx is the storage surface the generation engine consumes.
type Tx = common.Tx

// SQLGenerator is implemented by adapters that render DDL text.
type SQLGenerator interface {
	GenerateCreateTableSQL(table types.SchemaTable) string
}
