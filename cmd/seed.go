package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/mcpseed/internal/database"
	"github.com/Rana718/mcpseed/internal/domains"
	"github.com/Rana718/mcpseed/internal/export"
	"github.com/Rana718/mcpseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	seedParallel     bool
	seedDryRun       bool
	seedReport       string
	seedRandom       int64
	seedLinkStrategy string
	seedExport       string
	seedExportFormat string
)

var seedCmd = &cobra.Command{
	Use:   "seed [domain...]",
	Short: "Provision and populate the domain databases",
	Long: `Create each domain database if missing, create its tables and fill them
with synthetic rows. A domain whose sentinel table already holds rows is
skipped as a whole. Each domain is written in a single transaction.`,
	Example: `  mcpseed seed
  mcpseed seed mcp2 mcp5 --seed 42
  mcpseed seed --parallel --report run.yaml
  mcpseed seed --dry-run
  mcpseed seed --dry-run --export ./preview --export-format csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			cfg.Gen.Seed = seedRandom
		}
		if cmd.Flags().Changed("link-strategy") {
			cfg.Gen.LinkStrategy = seedLinkStrategy
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		if seedDryRun {
			cfg.Database.Provider = "memory"
			color.Yellow("⚠️  Dry run: seeding into process memory, nothing is written")
		}

		if seedExport != "" && !seedDryRun && cfg.Database.Provider != "memory" {
			return fmt.Errorf("--export needs --dry-run")
		}

		selected, err := domains.Select(args)
		if err != nil {
			return err
		}

		conn := database.NewConnector(cfg)
		s := seeder.NewSeeder(cfg, conn, seeder.Options{Parallel: seedParallel})

		color.Cyan("🌱 Starting database seeding (provider %s, seed %d)...", conn.Provider(), s.Seed())
		fmt.Println()

		report, runErr := s.SeedAll(context.Background(), selected)

		fmt.Println()
		printSummary(report)

		if seedReport != "" {
			if err := report.WriteFile(seedReport); err != nil {
				return err
			}
			color.Cyan("📝 Report written to %s", seedReport)
		}

		if seedExport != "" {
			data := export.Snapshot(conn.Memory(), report.RunID, report.StartedAt)
			path, err := export.Write(data, seedExport, seedExportFormat, report.StartedAt)
			if err != nil {
				return err
			}
			color.Cyan("📦 Generated rows exported to %s", path)
		}

		if runErr != nil {
			return fmt.Errorf("seeding finished with errors: %w", runErr)
		}
		color.Green("\n✅ Database seeding completed successfully!")
		return nil
	},
}

func printSummary(report *seeder.Report) {
	color.Cyan("📊 Summary (run %s)", report.RunID)
	for _, d := range report.Domains {
		switch d.Status {
		case seeder.StatusSeeded:
			var rows int64
			for _, n := range d.Rows {
				rows += n
			}
			color.Green("  ✅ %s: %d rows in %s", d.Name, rows, d.Duration)
		case seeder.StatusSkipped:
			color.Yellow("  ⏩ %s: already seeded", d.Name)
		default:
			color.Red("  ❌ %s: %s", d.Name, d.Error)
		}
	}
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&seedParallel, "parallel", false, "Seed domains concurrently, one connection each")
	seedCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "Seed into an in-process store instead of the configured database")
	seedCmd.Flags().StringVar(&seedReport, "report", "", "Write a YAML run report to this file")
	seedCmd.Flags().Int64Var(&seedRandom, "seed", 0, "Random seed (overrides SEED)")
	seedCmd.Flags().StringVar(&seedExport, "export", "", "With --dry-run, dump the generated rows into this directory")
	seedCmd.Flags().StringVar(&seedExportFormat, "export-format", export.FormatJSON, "Export format: json or csv")
	seedCmd.Flags().StringVar(&seedLinkStrategy, "link-strategy", "cache", "Foreign key selection: cache or store")
}
