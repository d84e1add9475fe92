package cmd

import (
	"fmt"
	"strings"

	"github.com/Rana718/mcpseed/internal/config"
	"github.com/Rana718/mcpseed/internal/database"
	"github.com/Rana718/mcpseed/internal/domains"
	"github.com/Rana718/mcpseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	domainsDDL  bool
	domainsYAML bool
)

type catalogColumn struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	References string `yaml:"references,omitempty"`
	Unique     bool   `yaml:"unique,omitempty"`
}

type catalogTable struct {
	Name    string          `yaml:"name"`
	Columns []catalogColumn `yaml:"columns"`
}

type catalogDomain struct {
	Name     string         `yaml:"name"`
	Title    string         `yaml:"title"`
	Sentinel string         `yaml:"sentinel"`
	Tables   []catalogTable `yaml:"tables"`
}

var domainsCmd = &cobra.Command{
	Use:   "domains [domain...]",
	Short: "List the seeded domains and their tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		selected, err := domains.Select(args)
		if err != nil {
			return err
		}

		switch {
		case domainsYAML:
			return printCatalogYAML(selected)
		case domainsDDL:
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return printDDL(cfg.Database.Provider, selected)
		}

		for _, d := range selected {
			ordered, err := seeder.OrderTables(d.Tables)
			if err != nil {
				return err
			}
			names := make([]string, len(ordered))
			for i, t := range ordered {
				names[i] = t.Name
			}
			color.Green("📦 %s (%s)", d.Name, d.Title)
			color.Cyan("   📋 Creation order: %s", strings.Join(names, " → "))
			color.Cyan("   🔎 Sentinel: %s", d.Sentinel)
		}
		return nil
	},
}

func printDDL(provider string, selected []seeder.Domain) error {
	gen, err := database.GeneratorFor(provider)
	if err != nil {
		return err
	}
	for _, d := range selected {
		ordered, err := seeder.OrderTables(d.Tables)
		if err != nil {
			return err
		}
		fmt.Printf("-- %s (%s)\n", d.Name, d.Title)
		for _, t := range ordered {
			fmt.Println(gen.GenerateCreateTableSQL(t))
			fmt.Println()
		}
	}
	return nil
}

func printCatalogYAML(selected []seeder.Domain) error {
	catalog := make([]catalogDomain, 0, len(selected))
	for _, d := range selected {
		ordered, err := seeder.OrderTables(d.Tables)
		if err != nil {
			return err
		}
		cd := catalogDomain{Name: d.Name, Title: d.Title, Sentinel: d.Sentinel}
		for _, t := range ordered {
			ct := catalogTable{Name: t.Name}
			for _, c := range t.Columns {
				cc := catalogColumn{Name: c.Name, Type: string(c.Type), Unique: c.IsUnique}
				if c.ForeignKeyTable != "" {
					cc.References = c.ForeignKeyTable + "." + c.ForeignKeyColumn
				}
				ct.Columns = append(ct.Columns, cc)
			}
			cd.Tables = append(cd.Tables, ct)
		}
		catalog = append(catalog, cd)
	}
	out, err := yaml.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func init() {
	rootCmd.AddCommand(domainsCmd)
	domainsCmd.Flags().BoolVar(&domainsDDL, "ddl", false, "Print CREATE TABLE statements for the configured provider")
	domainsCmd.Flags().BoolVar(&domainsYAML, "yaml", false, "Print the table catalog as YAML")
}
