package domains

import (
	"math"
	"testing"

	"github.com/Rana718/mcpseed/internal/database/memory"
	"github.com/Rana718/mcpseed/internal/seeder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentNumber(t *testing.T) {
	assert.Equal(t, "202000001", StudentNumber(2020, 1))
	assert.Equal(t, "202412345", StudentNumber(2024, 12345))
}

func TestGradePointTable(t *testing.T) {
	want := map[string]float64{
		"A+": 4.5, "A": 4.0, "B+": 3.5, "B": 3.0, "C+": 2.5,
		"C": 2.0, "D+": 1.5, "D": 1.0, "F": 0.0,
	}
	for letter, point := range want {
		got, ok := GradePoint(letter)
		assert.True(t, ok, letter)
		assert.Equal(t, point, got, letter)
	}
	_, ok := GradePoint("E")
	assert.False(t, ok)
}

func TestSynthesizeGrade(t *testing.T) {
	g, err := seeder.NewDataGenerator(5, refTime, "ko_KR")
	require.NoError(t, err)

	for i := 0; i < 2000; i++ {
		gr := SynthesizeGrade(g, GradeDistribution(true))
		assert.NotContains(t, []string{"D+", "D", "F"}, gr.Letter)
		assert.GreaterOrEqual(t, gr.Midterm, 60.0)
		assert.GreaterOrEqual(t, gr.Assignment, 70.0)
		assert.InDelta(t, TotalScore(gr.Midterm, gr.Final, gr.Assignment), gr.Total, 0.005+1e-9)
	}

	failing := seeder.MustDistribution(letterGrades, []float64{0, 0, 0, 0, 0, 0, 0, 0, 1}, nil)
	for i := 0; i < 500; i++ {
		gr := SynthesizeGrade(g, failing)
		assert.Equal(t, FailingLetter, gr.Letter)
		assert.Equal(t, 0.0, gr.Point)
		assert.LessOrEqual(t, gr.Midterm, 59.0)
		assert.LessOrEqual(t, gr.Final, 59.0)
		assert.LessOrEqual(t, gr.Assignment, 69.0)
		assert.InDelta(t, TotalScore(gr.Midterm, gr.Final, gr.Assignment), gr.Total, 0.005+1e-9)
	}
}

func TestAcademicDomain(t *testing.T) {
	cfg := smallConfig(t)
	server := memory.NewServer()
	report := seedAll(t, cfg, server, []seeder.Domain{Academic()})

	students := server.Rows("mcp5", "students")
	require.Len(t, students, 200)

	numbers := make(map[string]bool)
	gpa := make(map[int64]float64)
	active := make(map[int64]bool)
	highTier := int(float64(cfg.Counts.Students) * cfg.Academic.HighGPARatio)
	for i, row := range students {
		n := row.Values["student_number"].(string)
		assert.False(t, numbers[n], "duplicate student number %s", n)
		numbers[n] = true

		v := row.Values["gpa"].(float64)
		if i < highTier {
			assert.GreaterOrEqual(t, v, 3.8)
			assert.LessOrEqual(t, v, 4.5)
		} else {
			assert.GreaterOrEqual(t, v, 1.0)
			assert.LessOrEqual(t, v, 3.9)
		}
		gpa[row.ID] = v
		active[row.ID] = row.Values["status"] == ActiveStatus
	}

	t.Run("attendance", func(t *testing.T) {
		enrolled := 0
		pairs := make(map[[2]int64]bool)
		for _, row := range server.Rows("mcp5", "enrollments") {
			sid := row.Values["student_id"].(int64)
			if active[sid] {
				enrolled++
			}
			pairs[[2]int64{sid, row.Values["course_id"].(int64)}] = true
		}
		rows := server.Rows("mcp5", "attendance")
		assert.Len(t, rows, enrolled*cfg.Academic.SessionsPerCourse)

		for _, row := range rows {
			sid := row.Values["student_id"].(int64)
			assert.True(t, active[sid], "attendance for inactive student %d", sid)
			assert.True(t, pairs[[2]int64{sid, row.Values["course_id"].(int64)}])
			assert.Contains(t, []string{"출석", "지각", "조퇴", AbsentStatus}, row.Values["status"])
			assert.Equal(t, "2025-1", row.Values["semester"])
		}
	})

	t.Run("quota", func(t *testing.T) {
		d, ok := report.Domain("mcp5")
		require.True(t, ok)
		require.NotNil(t, d.Quota)
		assert.Equal(t, 20, d.Quota.Target)
		assert.Equal(t, LongAbsenceQuota(cfg.Academic).HighQuota(), d.Quota.HighQuota)
		assert.LessOrEqual(t, d.Quota.Rare, d.Quota.Target)
		assert.LessOrEqual(t, d.Quota.RareHigh, d.Quota.HighQuota)
		assert.Equal(t, d.Quota.Rare, d.Quota.RareHigh+d.Quota.RareNormal)

		n := 0
		for id := range active {
			if active[id] {
				n++
			}
		}
		assert.Equal(t, n, d.Quota.Subjects)
	})

	t.Run("grades", func(t *testing.T) {
		pairs := make(map[[2]int64]bool)
		for _, row := range server.Rows("mcp5", "enrollments") {
			pairs[[2]int64{row.Values["student_id"].(int64), row.Values["course_id"].(int64)}] = true
		}
		rows := server.Rows("mcp5", "grades")
		assert.Len(t, rows, len(pairs))

		graded := make(map[[2]int64]bool)
		for _, row := range rows {
			key := [2]int64{row.Values["student_id"].(int64), row.Values["course_id"].(int64)}
			assert.False(t, graded[key], "duplicate grade row %v", key)
			graded[key] = true

			letter := row.Values["letter_grade"].(string)
			point, ok := GradePoint(letter)
			require.True(t, ok, letter)
			assert.Equal(t, point, row.Values["grade_point"].(float64))

			m := row.Values["midterm_score"].(float64)
			f := row.Values["final_score"].(float64)
			a := row.Values["assignment_score"].(float64)
			total := row.Values["total_score"].(float64)
			assert.LessOrEqual(t, math.Abs(0.3*m+0.4*f+0.3*a-total), 0.005+1e-9)

			if gpa[key[0]] >= cfg.Academic.HighGPAThreshold {
				assert.NotContains(t, []string{"D+", "D", "F"}, letter)
			}
		}
	})
}
