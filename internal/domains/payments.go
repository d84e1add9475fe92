package domains

import (
	"context"

	"github.com/Rana718/mcpseed/internal/seeder"
	"github.com/Rana718/mcpseed/internal/types"
)

var (
	transactionTypes = []string{"purchase", "refund", "reward"}
	paymentMethods   = []string{"카드", "계좌이체", "포인트"}
	paymentStatuses  = []string{"성공", "실패"}
)

// Payments is mcp2: users, their transactions and one payment method row per
// transaction.
func Payments() seeder.Domain {
	return seeder.Domain{
		Name:    "mcp2",
		Title:   "payments",
		Ordinal: 2,
		Tables: []types.SchemaTable{
			{Name: "users", Columns: []types.SchemaColumn{
				types.Serial("user_id"),
				types.Text("name"),
				types.Date("join_date"),
				types.Text("segment"),
			}},
			{Name: "transactions", Columns: []types.SchemaColumn{
				types.Serial("transaction_id"),
				types.References("user_id", "users", "user_id"),
				types.Date("date"),
				types.Text("type"),
				types.Numeric("amount", 0, 0),
			}},
			{Name: "payment_methods", Columns: []types.SchemaColumn{
				types.Serial("payment_id"),
				types.References("transaction_id", "transactions", "transaction_id"),
				types.Text("method"),
				types.Text("status"),
			}},
		},
		Sentinel: "users",
		Populate: populatePayments,
	}
}

func populatePayments(ctx context.Context, run *seeder.Run) error {
	g := run.Gen
	n := run.Config.Counts

	err := run.Batch(ctx, "users", n.Users, func(int) error {
		_, err := run.Insert(ctx, "users",
			[]string{"name", "join_date", "segment"},
			g.Name(),
			g.DateBetween(seeder.YearsAgo(2), seeder.Today),
			seeder.Pick(g, segments),
		)
		return err
	})
	if err != nil {
		return err
	}

	return run.Batch(ctx, "transactions", n.Transactions, func(int) error {
		user, err := run.Pick(ctx, "users")
		if err != nil {
			return err
		}
		kind := seeder.Pick(g, transactionTypes)
		amount := g.IntBetween(1000, 100000)
		if kind == "refund" {
			amount = -amount
		}
		tid, err := run.Insert(ctx, "transactions",
			[]string{"user_id", "date", "type", "amount"},
			user,
			g.DateBetween(seeder.MonthsAgo(6), seeder.Today),
			kind,
			amount,
		)
		if err != nil {
			return err
		}
		_, err = run.Insert(ctx, "payment_methods",
			[]string{"transaction_id", "method", "status"},
			tid,
			seeder.Pick(g, paymentMethods),
			seeder.Pick(g, paymentStatuses),
		)
		return err
	})
}
