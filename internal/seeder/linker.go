package seeder

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/Rana718/mcpseed/internal/database"
)

const (
	LinkCache = "cache"
	LinkStore = "store"
)

var ErrNoParentRows = errors.New("no parent rows to reference")

// Linker fills foreign keys by sampling a previously inserted parent row
// uniformly at random. The cache strategy draws from ids recorded in this
// run; the store strategy asks the open transaction for a random row.
type Linker struct {
	strategy string
	tx       database.Tx
	rand     *rand.Rand
	ids      map[string][]int64
	pks      map[string]string
}

func NewLinker(strategy string, tx database.Tx, r *rand.Rand) (*Linker, error) {
	switch strategy {
	case "", LinkCache:
		strategy = LinkCache
	case LinkStore:
	default:
		return nil, fmt.Errorf("unsupported link strategy: %s", strategy)
	}
	return &Linker{
		strategy: strategy,
		tx:       tx,
		rand:     r,
		ids:      make(map[string][]int64),
		pks:      make(map[string]string),
	}, nil
}

func (l *Linker) Strategy() string {
	return l.strategy
}

// Record registers a freshly inserted row as a candidate parent.
func (l *Linker) Record(table, pk string, id int64) {
	l.ids[table] = append(l.ids[table], id)
	l.pks[table] = pk
}

// IDs returns the ids recorded for table in insertion order.
func (l *Linker) IDs(table string) []int64 {
	return l.ids[table]
}

// Pick returns the id of one uniformly chosen parent row of table.
func (l *Linker) Pick(ctx context.Context, table string) (int64, error) {
	ids := l.ids[table]
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNoParentRows, table)
	}
	if l.strategy == LinkStore {
		return l.tx.RandomID(ctx, table, l.pks[table])
	}
	return ids[l.rand.Intn(len(ids))], nil
}
