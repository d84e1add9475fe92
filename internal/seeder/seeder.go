package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rana718/mcpseed/internal/config"
	"github.com/Rana718/mcpseed/internal/database"
	"github.com/Rana718/mcpseed/internal/database/common"
	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	// Now anchors every relative date window. Zero means wall clock.
	Now time.Time
	// Parallel seeds domains concurrently, one connection each.
	Parallel bool
}

type Seeder struct {
	config *config.Config
	conn   *database.Connector
	opts   Options
	seed   int64
}

func NewSeeder(cfg *config.Config, conn *database.Connector, opts Options) *Seeder {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	seed := cfg.Gen.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Seeder{config: cfg, conn: conn, opts: opts, seed: seed}
}

// Seed is the base seed; each domain draws from Seed plus its ordinal.
func (s *Seeder) Seed() int64 {
	return s.seed
}

// EnsureDatabase creates the named database when it is missing. It runs on
// the admin connection, outside any transaction. The returned flag reports
// whether the database was created.
func (s *Seeder) EnsureDatabase(ctx context.Context, name string) (bool, error) {
	if err := common.CheckIdentifiers(name); err != nil {
		return false, err
	}
	admin, err := s.conn.Admin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to connect to admin database: %w", err)
	}
	defer admin.Close()

	exists, err := admin.DatabaseExists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("failed to check database %s: %w", name, err)
	}
	if exists {
		return false, nil
	}
	if err := admin.CreateDatabase(ctx, name); err != nil {
		return false, fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return true, nil
}

// EnsureSchema creates the domain's tables parents-first and then probes the
// sentinel table. It reports true when the domain already holds data.
func (s *Seeder) EnsureSchema(ctx context.Context, tx database.Tx, d Domain) (bool, error) {
	if _, ok := d.Table(d.Sentinel); !ok {
		return false, fmt.Errorf("sentinel table %s is not declared in domain %s", d.Sentinel, d.Name)
	}
	ordered, err := OrderTables(d.Tables)
	if err != nil {
		return false, fmt.Errorf("failed to order tables: %w", err)
	}
	for _, table := range ordered {
		if err := tx.CreateTable(ctx, table); err != nil {
			return false, err
		}
	}
	n, err := tx.Count(ctx, d.Sentinel)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SeedDomain provisions, initializes and populates one domain inside a
// single transaction. Any error rolls the whole domain back.
func (s *Seeder) SeedDomain(ctx context.Context, d Domain) (rep DomainReport, err error) {
	start := time.Now()
	rep = DomainReport{Name: d.Name}
	defer func() {
		rep.Duration = time.Since(start).Round(time.Millisecond)
		if err != nil {
			rep.Status = StatusFailed
			rep.Error = err.Error()
			color.Red("[%s] ❌ %v", d.Name, err)
		}
	}()

	color.Cyan("[%s] 🌱 Seeding %s...", d.Name, d.Title)

	created, err := s.EnsureDatabase(ctx, d.Name)
	if err != nil {
		return rep, err
	}
	rep.DatabaseCreated = created
	if created {
		color.Green("[%s] ✅ Database created", d.Name)
	}

	adapter, err := s.conn.Open(ctx, d.Name)
	if err != nil {
		return rep, fmt.Errorf("failed to connect to %s: %w", d.Name, err)
	}
	defer adapter.Close()

	gen, err := NewDataGenerator(s.seed+int64(d.Ordinal), s.opts.Now, s.config.Gen.Locale)
	if err != nil {
		return rep, err
	}

	tx, err := adapter.Begin(ctx)
	if err != nil {
		return rep, fmt.Errorf("failed to begin transaction: %w", err)
	}
	color.Cyan("[%s] 🔒 Transaction started", d.Name)

	seeded, err := s.EnsureSchema(ctx, tx, d)
	if err != nil {
		return rep, rollback(ctx, d.Name, tx, fmt.Errorf("failed to initialize schema: %w", err))
	}
	if seeded {
		if err := tx.Commit(ctx); err != nil {
			return rep, fmt.Errorf("failed to commit schema: %w", err)
		}
		color.Yellow("[%s] ⚠️  %s already has rows, skipping domain", d.Name, d.Sentinel)
		rep.Status = StatusSkipped
		return rep, nil
	}

	run, err := NewRun(d, s.config, tx, gen)
	if err != nil {
		return rep, rollback(ctx, d.Name, tx, err)
	}
	if err := d.Populate(ctx, run); err != nil {
		return rep, rollback(ctx, d.Name, tx, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return rep, rollback(ctx, d.Name, tx, fmt.Errorf("failed to commit transaction: %w", err))
	}
	color.Cyan("[%s] 🔓 Transaction committed", d.Name)

	rep.Status = StatusSeeded
	rep.Rows = run.Counts()
	rep.Quota = run.Quota()
	color.Green("[%s] ✅ Seeded %s", d.Name, summarize(rep.Rows, d))
	return rep, nil
}

func rollback(ctx context.Context, name string, tx database.Tx, cause error) error {
	color.Yellow("[%s] 🔄 Rolling back transaction due to error...", name)
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("seed failed and rollback failed: %v (original: %w)", err, cause)
	}
	color.Yellow("[%s] ✅ Transaction rolled back", name)
	return cause
}

func summarize(rows map[string]int64, d Domain) string {
	parts := make([]string, 0, len(d.Tables))
	for _, t := range d.Tables {
		parts = append(parts, fmt.Sprintf("%s=%d", t.Name, rows[t.Name]))
	}
	return strings.Join(parts, ", ")
}

// SeedAll seeds every domain and collects a report. A connectivity failure
// stops the run; other domain failures are rolled back and the remaining
// domains still run. All failures are returned joined.
func (s *Seeder) SeedAll(ctx context.Context, domains []Domain) (*Report, error) {
	report := NewReport(s.conn.Provider(), s.seed, s.linkStrategy(), s.opts.Now)
	report.Parallel = s.opts.Parallel

	results := make([]*DomainReport, len(domains))
	errs := make([]error, len(domains))

	if s.opts.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, d := range domains {
			g.Go(func() error {
				rep, err := s.SeedDomain(gctx, d)
				results[i], errs[i] = &rep, err
				if errors.Is(err, common.ErrConnectivity) {
					return err
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			color.Red("❌ Aborting run: %v", err)
		}
	} else {
		for i, d := range domains {
			rep, err := s.SeedDomain(ctx, d)
			results[i], errs[i] = &rep, err
			if errors.Is(err, common.ErrConnectivity) {
				color.Red("❌ Aborting run: %v", err)
				break
			}
		}
	}

	for _, rep := range results {
		if rep != nil {
			report.Domains = append(report.Domains, *rep)
		}
	}
	return report, errors.Join(errs...)
}

func (s *Seeder) linkStrategy() string {
	if s.config.Gen.LinkStrategy == "" {
		return LinkCache
	}
	return s.config.Gen.LinkStrategy
}
