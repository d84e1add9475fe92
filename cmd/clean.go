package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Rana718/mcpseed/internal/database"
	"github.com/Rana718/mcpseed/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var cleanForce bool

var cleanCmd = &cobra.Command{
	Use:   "clean [database...]",
	Short: "Truncate every table in the domain databases",
	Long: `Empty every table of each database with cascading delete. Defaults to
the names in DATABASE_LIST. The first failing database aborts the cleanup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		names := args
		if len(names) == 0 {
			names = cfg.Databases()
		}
		if len(names) == 0 {
			color.Yellow("⚠️  No databases to clean")
			return nil
		}

		msg := fmt.Sprintf("Truncate all tables in %s?", strings.Join(names, ", "))
		if !askUserConfirmation(msg, cleanForce) {
			return fmt.Errorf("cleanup cancelled by user")
		}

		if err := seeder.Truncate(context.Background(), database.NewConnector(cfg), names); err != nil {
			return err
		}
		color.Green("\n✅ Cleanup completed")
		return nil
	},
}

func askUserConfirmation(message string, force bool) bool {
	if force {
		return true
	}

	fmt.Printf("🤔 %s (y/N): ", message)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolVarP(&cleanForce, "force", "f", false, "Skip confirmation")
}
