package domains

import (
	"context"
	"testing"
	"time"

	"github.com/Rana718/mcpseed/internal/config"
	"github.com/Rana718/mcpseed/internal/database"
	"github.com/Rana718/mcpseed/internal/database/common"
	"github.com/Rana718/mcpseed/internal/database/memory"
	"github.com/Rana718/mcpseed/internal/seeder"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refTime = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func smallConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(viper.New())
	require.NoError(t, err)
	cfg.Database.Provider = "memory"
	cfg.Gen.Seed = 11
	cfg.Gen.Locale = "ko_KR"
	cfg.Gen.LinkStrategy = seeder.LinkCache
	cfg.Counts = config.Counts{
		Customers: 50, Orders: 120, Campaigns: 3, CampaignDays: 30,
		Users: 40, Transactions: 90, Activities: 60, Feedbacks: 30,
		Employees: 20, Projects: 5, Events: 10, SupplyRequests: 15,
		Students: 200, Professors: 10, Courses: 20, Enrollments: 500,
	}
	cfg.Academic.LongAbsentTarget = 20
	return cfg
}

func seedAll(t *testing.T, cfg *config.Config, server *memory.Server, selected []seeder.Domain) *seeder.Report {
	t.Helper()
	s := seeder.NewSeeder(cfg, database.NewMemoryConnector(cfg, server), seeder.Options{Now: refTime})
	report, err := s.SeedAll(context.Background(), selected)
	require.NoError(t, err)
	return report
}

func TestCatalog(t *testing.T) {
	ordinals := make(map[int]bool)
	for _, d := range All() {
		assert.NoError(t, common.CheckIdentifiers(d.Name))
		_, ok := d.Table(d.Sentinel)
		assert.True(t, ok, "%s sentinel %s", d.Name, d.Sentinel)
		assert.False(t, ordinals[d.Ordinal], "duplicate ordinal %d", d.Ordinal)
		ordinals[d.Ordinal] = true

		ordered, err := seeder.OrderTables(d.Tables)
		require.NoError(t, err)
		assert.Len(t, ordered, len(d.Tables))

		for _, tbl := range d.Tables {
			assert.NoError(t, common.CheckIdentifiers(tbl.Name))
			assert.NotEmpty(t, tbl.PrimaryKey(), tbl.Name)
			for _, col := range tbl.Columns {
				assert.NoError(t, common.CheckIdentifiers(col.Name))
				if col.ForeignKeyTable != "" {
					assert.Equal(t, "CASCADE", col.OnDeleteAction)
				}
			}
		}
	}
}

func TestSelect(t *testing.T) {
	all, err := Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	picked, err := Select([]string{"mcp5", "mcp2", "mcp5"})
	require.NoError(t, err)
	require.Len(t, picked, 2)
	assert.Equal(t, "mcp5", picked[0].Name)
	assert.Equal(t, "mcp2", picked[1].Name)

	_, err = Select([]string{"mcp9"})
	assert.Error(t, err)
}

func TestSeedAllDomains(t *testing.T) {
	cfg := smallConfig(t)
	server := memory.NewServer()
	report := seedAll(t, cfg, server, All())

	require.Len(t, report.Domains, 5)
	for _, d := range report.Domains {
		assert.Equal(t, seeder.StatusSeeded, d.Status, d.Name)
	}

	expect := map[string]map[string]int{
		"mcp1": {"customers": 50, "orders": 120, "campaigns": 3, "campaign_performance": 90},
		"mcp2": {"users": 40, "transactions": 90, "payment_methods": 90},
		"mcp3": {"users": 40, "user_activity": 60, "feedback": 30},
		"mcp4": {"employees": 20, "projects": 5, "budget_requests": 15, "events": 10, "supplies_requests": 15},
		"mcp5": {"students": 200, "professors": 10, "courses": 20, "enrollments": 500},
	}
	for db, tables := range expect {
		for table, n := range tables {
			assert.Equal(t, n, server.Count(db, table), "%s.%s", db, table)
		}
	}
}

func TestForeignKeysReferenceEarlierRows(t *testing.T) {
	for _, strategy := range []string{seeder.LinkCache, seeder.LinkStore} {
		t.Run(strategy, func(t *testing.T) {
			cfg := smallConfig(t)
			cfg.Gen.LinkStrategy = strategy
			server := memory.NewServer()
			seedAll(t, cfg, server, All())

			for _, d := range All() {
				for _, tbl := range d.Tables {
					for _, col := range tbl.Columns {
						if col.ForeignKeyTable == "" {
							continue
						}
						parents := make(map[int64]int64)
						for _, row := range server.Rows(d.Name, col.ForeignKeyTable) {
							parents[row.ID] = row.Seq
						}
						for _, row := range server.Rows(d.Name, tbl.Name) {
							ref, ok := row.Values[col.Name].(int64)
							require.True(t, ok, "%s.%s.%s", d.Name, tbl.Name, col.Name)
							seq, ok := parents[ref]
							require.True(t, ok, "%s.%s -> %s(%d) missing", d.Name, tbl.Name, col.ForeignKeyTable, ref)
							assert.Less(t, seq, row.Seq)
						}
					}
				}
			}
		})
	}
}

func TestSeedingTwiceKeepsCounts(t *testing.T) {
	cfg := smallConfig(t)
	server := memory.NewServer()
	seedAll(t, cfg, server, All())

	type key struct{ db, table string }
	first := make(map[key]int)
	for _, db := range server.Databases() {
		for _, table := range server.Tables(db) {
			first[key{db, table}] = server.Count(db, table)
		}
	}

	report := seedAll(t, cfg, server, All())
	for _, d := range report.Domains {
		assert.Equal(t, seeder.StatusSkipped, d.Status, d.Name)
	}
	for k, n := range first {
		assert.Equal(t, n, server.Count(k.db, k.table), "%s.%s", k.db, k.table)
	}
}

func TestPaymentsScenario(t *testing.T) {
	cfg := smallConfig(t)
	cfg.Counts.Users = 800
	cfg.Counts.Transactions = 4000
	server := memory.NewServer()
	seedAll(t, cfg, server, []seeder.Domain{Payments()})

	assert.Equal(t, 800, server.Count("mcp2", "users"))
	assert.Equal(t, 4000, server.Count("mcp2", "transactions"))
	assert.Equal(t, 4000, server.Count("mcp2", "payment_methods"))

	paid := make(map[int64]int)
	for _, row := range server.Rows("mcp2", "payment_methods") {
		paid[row.Values["transaction_id"].(int64)]++
	}
	for _, row := range server.Rows("mcp2", "transactions") {
		assert.Equal(t, 1, paid[row.ID])
		amount := row.Values["amount"].(int)
		if row.Values["type"] == "refund" {
			assert.Negative(t, amount)
		} else {
			assert.Positive(t, amount)
		}
	}
}

func TestCampaignFunnel(t *testing.T) {
	cfg := smallConfig(t)
	server := memory.NewServer()
	seedAll(t, cfg, server, []seeder.Domain{Ecommerce()})

	first := refTime.Truncate(24*time.Hour).AddDate(0, 0, -30)
	for _, row := range server.Rows("mcp1", "campaign_performance") {
		impressions := row.Values["impressions"].(int)
		clicks := row.Values["clicks"].(int)
		conversions := row.Values["conversions"].(int)
		assert.LessOrEqual(t, clicks, impressions)
		assert.LessOrEqual(t, conversions, clicks)

		day := row.Values["date"].(time.Time)
		assert.False(t, day.Before(first))
		assert.True(t, day.Before(refTime.Truncate(24*time.Hour)))
	}

	for _, row := range server.Rows("mcp1", "campaigns") {
		start := row.Values["start_date"].(time.Time)
		end := row.Values["end_date"].(time.Time)
		assert.Equal(t, start.AddDate(0, 0, 30), end)
	}
}

func TestBudgetRequestsCoverEveryQuarter(t *testing.T) {
	cfg := smallConfig(t)
	server := memory.NewServer()
	seedAll(t, cfg, server, []seeder.Domain{PublicAdmin()})

	quarters := make(map[int64][]string)
	for _, row := range server.Rows("mcp4", "budget_requests") {
		pid := row.Values["proj_id"].(int64)
		quarters[pid] = append(quarters[pid], row.Values["quarter"].(string))
	}
	require.Len(t, quarters, 5)
	for _, q := range quarters {
		assert.Equal(t, budgetQuarters, q)
	}
}
