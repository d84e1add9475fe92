package domains

import (
	"context"
	"fmt"

	"github.com/Rana718/mcpseed/internal/seeder"
	"github.com/Rana718/mcpseed/internal/types"
)

var (
	civilGrades       = []string{"9급", "8급", "7급", "6급", "5급", "4급"}
	adminDepartments  = []string{"문화정책과", "관광산업과", "스포츠진흥과", "국제협력담당관", "홍보담당관"}
	projectCategories = []string{"문화", "관광", "스포츠"}
	budgetQuarters    = []string{"2024Q4", "2025Q1", "2025Q2"}
	budgetStatuses    = []string{"제출", "검토중", "승인", "반려"}
	venues            = []string{"세종문화회관", "DDP", "광화문광장", "부산 벡스코", "인천 아시아드주경기장"}
	supplyItems       = []string{"A4용지", "볼펜", "현수막", "배너", "기념품", "행사간식"}
	supplyPurposes    = []string{"회의", "행사", "홍보물", "민원 대응"}
	approvalStatuses  = []string{"대기", "승인", "반려"}
)

// PublicAdmin is mcp4: civil servants, cultural and tourism projects with
// their budgets and events, and office supply requests.
func PublicAdmin() seeder.Domain {
	return seeder.Domain{
		Name:    "mcp4",
		Title:   "public administration",
		Ordinal: 4,
		Tables: []types.SchemaTable{
			{Name: "employees", Columns: []types.SchemaColumn{
				types.Serial("emp_id"),
				types.Text("name"),
				types.Text("grade"),
				types.Text("dept"),
				types.Date("join_date"),
			}},
			{Name: "projects", Columns: []types.SchemaColumn{
				types.Serial("proj_id"),
				types.Text("title"),
				types.Text("category"),
				types.Date("start_date"),
				types.Date("end_date"),
				types.References("owner_emp", "employees", "emp_id"),
			}},
			{Name: "budget_requests", Columns: []types.SchemaColumn{
				types.Serial("req_id"),
				types.References("proj_id", "projects", "proj_id"),
				types.Text("quarter"),
				types.Numeric("amount", 0, 0),
				types.Text("status"),
			}},
			{Name: "events", Columns: []types.SchemaColumn{
				types.Serial("event_id"),
				types.References("proj_id", "projects", "proj_id"),
				types.Text("event_name"),
				types.Date("event_date"),
				types.Text("location"),
				types.Int("attendance"),
			}},
			{Name: "supplies_requests", Columns: []types.SchemaColumn{
				types.Serial("supply_id"),
				types.References("emp_id", "employees", "emp_id"),
				types.Date("request_date"),
				types.Text("item"),
				types.Int("quantity"),
				types.Text("purpose"),
				types.Text("approval_status"),
			}},
		},
		Sentinel: "employees",
		Populate: populatePublicAdmin,
	}
}

func populatePublicAdmin(ctx context.Context, run *seeder.Run) error {
	g := run.Gen
	n := run.Config.Counts

	err := run.Batch(ctx, "employees", n.Employees, func(int) error {
		_, err := run.Insert(ctx, "employees",
			[]string{"name", "grade", "dept", "join_date"},
			g.Name(),
			seeder.Pick(g, civilGrades),
			seeder.Pick(g, adminDepartments),
			g.DateBetween(seeder.YearsAgo(10), seeder.Today),
		)
		return err
	})
	if err != nil {
		return err
	}

	err = run.Batch(ctx, "projects", n.Projects, func(i int) error {
		start := g.DateBetween(seeder.MonthsAgo(18), seeder.MonthsAgo(6))
		end := start.AddDate(0, 0, g.IntBetween(90, 365))
		owner, err := run.Pick(ctx, "employees")
		if err != nil {
			return err
		}
		_, err = run.Insert(ctx, "projects",
			[]string{"title", "category", "start_date", "end_date", "owner_emp"},
			fmt.Sprintf("프로젝트_%02d", i+1),
			seeder.Pick(g, projectCategories),
			start,
			end,
			owner,
		)
		return err
	})
	if err != nil {
		return err
	}

	projects := run.Link.IDs("projects")
	err = run.Batch(ctx, "budget_requests", len(projects)*len(budgetQuarters), func(i int) error {
		_, err := run.Insert(ctx, "budget_requests",
			[]string{"proj_id", "quarter", "amount", "status"},
			projects[i/len(budgetQuarters)],
			budgetQuarters[i%len(budgetQuarters)],
			g.IntBetween(5_000_000, 200_000_000),
			seeder.Pick(g, budgetStatuses),
		)
		return err
	})
	if err != nil {
		return err
	}

	err = run.Batch(ctx, "events", n.Events, func(int) error {
		project, err := run.Pick(ctx, "projects")
		if err != nil {
			return err
		}
		_, err = run.Insert(ctx, "events",
			[]string{"proj_id", "event_name", "event_date", "location", "attendance"},
			project,
			g.Sentence(3),
			g.DateBetween(seeder.MonthsAgo(6), seeder.Today),
			seeder.Pick(g, venues),
			g.IntBetween(100, 10000),
		)
		return err
	})
	if err != nil {
		return err
	}

	return run.Batch(ctx, "supplies_requests", n.SupplyRequests, func(int) error {
		employee, err := run.Pick(ctx, "employees")
		if err != nil {
			return err
		}
		_, err = run.Insert(ctx, "supplies_requests",
			[]string{"emp_id", "request_date", "item", "quantity", "purpose", "approval_status"},
			employee,
			g.DateBetween(seeder.MonthsAgo(3), seeder.Today),
			seeder.Pick(g, supplyItems),
			g.IntBetween(1, 200),
			seeder.Pick(g, supplyPurposes),
			seeder.Pick(g, approvalStatuses),
		)
		return err
	})
}
