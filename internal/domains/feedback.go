package domains

import (
	"context"

	"github.com/Rana718/mcpseed/internal/seeder"
	"github.com/Rana718/mcpseed/internal/types"
)

var (
	signupChannels     = []string{"검색", "SNS", "광고", "지인추천"}
	activityTypes      = []string{"로그인", "검색", "상품조회", "결제"}
	feedbackCategories = []string{"배송", "제품", "가격", "서비스"}
	sentiments         = []string{"positive", "neutral", "negative"}
)

// Feedback is mcp3: service users, their activity log and feedback.
func Feedback() seeder.Domain {
	return seeder.Domain{
		Name:    "mcp3",
		Title:   "service logs & feedback",
		Ordinal: 3,
		Tables: []types.SchemaTable{
			{Name: "users", Columns: []types.SchemaColumn{
				types.Serial("user_id"),
				types.Text("name"),
				types.Date("signup_date"),
				types.Text("acquisition_channel"),
			}},
			{Name: "user_activity", Columns: []types.SchemaColumn{
				types.Serial("activity_id"),
				types.References("user_id", "users", "user_id"),
				types.Date("activity_date"),
				types.Text("activity_type"),
			}},
			{Name: "feedback", Columns: []types.SchemaColumn{
				types.Serial("feedback_id"),
				types.References("user_id", "users", "user_id"),
				types.Date("date"),
				types.Int("rating"),
				types.Text("sentiment"),
				types.Text("category"),
				types.Text("comments"),
			}},
		},
		Sentinel: "users",
		Populate: populateFeedback,
	}
}

func populateFeedback(ctx context.Context, run *seeder.Run) error {
	g := run.Gen
	n := run.Config.Counts

	err := run.Batch(ctx, "users", n.Users, func(int) error {
		_, err := run.Insert(ctx, "users",
			[]string{"name", "signup_date", "acquisition_channel"},
			g.Name(),
			g.DateBetween(seeder.YearsAgo(1), seeder.Today),
			seeder.Pick(g, signupChannels),
		)
		return err
	})
	if err != nil {
		return err
	}

	err = run.Batch(ctx, "user_activity", n.Activities, func(int) error {
		user, err := run.Pick(ctx, "users")
		if err != nil {
			return err
		}
		_, err = run.Insert(ctx, "user_activity",
			[]string{"user_id", "activity_date", "activity_type"},
			user,
			g.DateBetween(seeder.MonthsAgo(6), seeder.Today),
			seeder.Pick(g, activityTypes),
		)
		return err
	})
	if err != nil {
		return err
	}

	return run.Batch(ctx, "feedback", n.Feedbacks, func(int) error {
		user, err := run.Pick(ctx, "users")
		if err != nil {
			return err
		}
		_, err = run.Insert(ctx, "feedback",
			[]string{"user_id", "date", "rating", "sentiment", "category", "comments"},
			user,
			g.DateBetween(seeder.MonthsAgo(3), seeder.Today),
			g.IntBetween(1, 5),
			seeder.Pick(g, sentiments),
			seeder.Pick(g, feedbackCategories),
			g.Sentence(8),
		)
		return err
	})
}
