package seeder

import (
	"context"
	"fmt"

	"github.com/Rana718/mcpseed/internal/database"
	"github.com/Rana718/mcpseed/internal/database/common"
	"github.com/fatih/color"
)

// Truncate empties every table of each named database. Each database is one
// administrative operation; the first failure aborts the remaining ones.
func Truncate(ctx context.Context, conn *database.Connector, names []string) error {
	if err := common.CheckIdentifiers(names...); err != nil {
		return err
	}
	for _, name := range names {
		color.Cyan("🧹 Truncating all tables in %s...", name)
		if err := truncateOne(ctx, conn, name); err != nil {
			color.Red("❌ %s: %v", name, err)
			return fmt.Errorf("cleanup of %s failed: %w", name, err)
		}
		color.Green("✅ %s cleaned", name)
	}
	return nil
}

func truncateOne(ctx context.Context, conn *database.Connector, name string) error {
	adapter, err := conn.Open(ctx, name)
	if err != nil {
		return err
	}
	defer adapter.Close()
	return adapter.TruncateAll(ctx)
}
