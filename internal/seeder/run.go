package seeder

import (
	"context"
	"fmt"

	"github.com/Rana718/mcpseed/internal/config"
	"github.com/Rana718/mcpseed/internal/database"
	"github.com/Rana718/mcpseed/internal/types"
	"github.com/fatih/color"
)

// Domain is one independently seeded business schema.
type Domain struct {
	// Name is both the domain key and its target database name.
	Name    string
	Title   string
	Ordinal int
	// Tables are created parents-first regardless of declaration order.
	Tables []types.SchemaTable
	// Sentinel is the table whose row count decides whether the domain has
	// already been seeded.
	Sentinel string
	Populate func(ctx context.Context, run *Run) error
}

func (d Domain) Table(name string) (types.SchemaTable, bool) {
	for _, t := range d.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return types.SchemaTable{}, false
}

// Run is the generation context of one domain invocation. It owns the open
// transaction, the random source and every counter the generation touches.
type Run struct {
	Domain Domain
	Config *config.Config
	Tx     database.Tx
	Gen    *DataGenerator
	Link   *Linker

	tables map[string]types.SchemaTable
	counts map[string]int64
	quota  *QuotaSummary
}

func NewRun(domain Domain, cfg *config.Config, tx database.Tx, gen *DataGenerator) (*Run, error) {
	link, err := NewLinker(cfg.Gen.LinkStrategy, tx, gen.Rand())
	if err != nil {
		return nil, err
	}
	tables := make(map[string]types.SchemaTable, len(domain.Tables))
	for _, t := range domain.Tables {
		tables[t.Name] = t
	}
	return &Run{
		Domain: domain,
		Config: cfg,
		Tx:     tx,
		Gen:    gen,
		Link:   link,
		tables: tables,
		counts: make(map[string]int64),
	}, nil
}

// Insert adds one row to table and records its id for later foreign key
// picks. columns and values pair up positionally.
func (r *Run) Insert(ctx context.Context, table string, columns []string, values ...interface{}) (int64, error) {
	def, ok := r.tables[table]
	if !ok {
		return 0, fmt.Errorf("table %s is not part of domain %s", table, r.Domain.Name)
	}
	if len(columns) != len(values) {
		return 0, fmt.Errorf("insert into %s: %d columns but %d values", table, len(columns), len(values))
	}
	pk := def.PrimaryKey()
	id, err := r.Tx.Insert(ctx, table, pk, columns, values)
	if err != nil {
		return 0, err
	}
	r.Link.Record(table, pk, id)
	r.counts[table]++
	return id, nil
}

// Pick returns the id of a random previously inserted row of table.
func (r *Run) Pick(ctx context.Context, table string) (int64, error) {
	return r.Link.Pick(ctx, table)
}

func (r *Run) Counts() map[string]int64 {
	out := make(map[string]int64, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out
}

// RecordQuota attaches the outcome of a propensity assignment to the run.
func (r *Run) RecordQuota(q QuotaTarget, res QuotaResult) {
	r.quota = &QuotaSummary{
		Target:     q.Target,
		HighQuota:  q.HighQuota(),
		Subjects:   len(res.Assignments),
		Rare:       res.Rare,
		RareHigh:   res.RareHigh,
		RareNormal: res.RareNormal,
	}
}

func (r *Run) Quota() *QuotaSummary {
	return r.quota
}

// Logf prints a progress line prefixed with the domain name.
func (r *Run) Logf(format string, args ...interface{}) {
	color.Cyan("[%s] "+format, append([]interface{}{r.Domain.Name}, args...)...)
}

// Batch runs fn n times and reports the table count when done.
func (r *Run) Batch(ctx context.Context, table string, n int, fn func(i int) error) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(i); err != nil {
			return fmt.Errorf("seed %s: %w", table, err)
		}
	}
	r.Logf("  ✓ %s: %d rows", table, r.counts[table])
	return nil
}
