package domains

import (
	"context"
	"fmt"

	"github.com/Rana718/mcpseed/internal/seeder"
	"github.com/Rana718/mcpseed/internal/types"
)

var (
	acquisitionChannels = []string{"SNS 광고", "검색엔진", "이메일"}
)

// Ecommerce is mcp1: customers, orders and marketing campaign performance.
func Ecommerce() seeder.Domain {
	return seeder.Domain{
		Name:    "mcp1",
		Title:   "e-commerce & marketing",
		Ordinal: 1,
		Tables: []types.SchemaTable{
			{Name: "customers", Columns: []types.SchemaColumn{
				types.Serial("customer_id"),
				types.Text("name"),
				types.Text("segment"),
				types.Date("signup_date"),
				types.Text("acquisition_channel"),
			}},
			{Name: "orders", Columns: []types.SchemaColumn{
				types.Serial("order_id"),
				types.References("customer_id", "customers", "customer_id"),
				types.Date("order_date"),
				types.Numeric("amount", 0, 0),
				types.Int("product_id"),
			}},
			{Name: "campaigns", Columns: []types.SchemaColumn{
				types.Serial("campaign_id"),
				types.Text("campaign_name"),
				types.Date("start_date"),
				types.Date("end_date"),
				types.Numeric("budget", 0, 0),
			}},
			{Name: "campaign_performance", Columns: []types.SchemaColumn{
				types.Serial("id"),
				types.References("campaign_id", "campaigns", "campaign_id"),
				types.Date("date"),
				types.Int("impressions"),
				types.Int("clicks"),
				types.Int("conversions"),
			}},
		},
		Sentinel: "customers",
		Populate: populateEcommerce,
	}
}

func populateEcommerce(ctx context.Context, run *seeder.Run) error {
	g := run.Gen
	n := run.Config.Counts

	err := run.Batch(ctx, "customers", n.Customers, func(int) error {
		_, err := run.Insert(ctx, "customers",
			[]string{"name", "segment", "signup_date", "acquisition_channel"},
			g.Name(),
			seeder.Pick(g, segments),
			g.DateBetween(seeder.YearsAgo(2), seeder.Today),
			seeder.Pick(g, acquisitionChannels),
		)
		return err
	})
	if err != nil {
		return err
	}

	err = run.Batch(ctx, "campaigns", n.Campaigns, func(i int) error {
		start := g.DateBetween(seeder.MonthsAgo(3), seeder.MonthsAgo(1))
		_, err := run.Insert(ctx, "campaigns",
			[]string{"campaign_name", "start_date", "end_date", "budget"},
			fmt.Sprintf("Campaign_%d", i+1),
			start,
			start.AddDate(0, 0, 30),
			g.IntBetween(1000, 5000),
		)
		return err
	})
	if err != nil {
		return err
	}

	// One row per campaign per day, ending yesterday.
	first := g.Day(seeder.DaysAgo(n.CampaignDays))
	campaigns := run.Link.IDs("campaigns")
	err = run.Batch(ctx, "campaign_performance", len(campaigns)*n.CampaignDays, func(i int) error {
		cid := campaigns[i/n.CampaignDays]
		day := first.AddDate(0, 0, i%n.CampaignDays)
		impressions := g.IntBetween(1000, 10000)
		clicks := g.IntBetween(100, impressions)
		conversions := g.IntBetween(0, clicks)
		_, err := run.Insert(ctx, "campaign_performance",
			[]string{"campaign_id", "date", "impressions", "clicks", "conversions"},
			cid, day, impressions, clicks, conversions,
		)
		return err
	})
	if err != nil {
		return err
	}

	return run.Batch(ctx, "orders", n.Orders, func(int) error {
		customer, err := run.Pick(ctx, "customers")
		if err != nil {
			return err
		}
		_, err = run.Insert(ctx, "orders",
			[]string{"customer_id", "order_date", "amount", "product_id"},
			customer,
			g.DateBetween(seeder.YearsAgo(1), seeder.Today),
			g.IntBetween(10000, 300000),
			g.IntBetween(1, 100),
		)
		return err
	})
}
