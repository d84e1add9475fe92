package domains

import (
	"context"
	"fmt"

	"github.com/Rana718/mcpseed/internal/config"
	"github.com/Rana718/mcpseed/internal/seeder"
	"github.com/Rana718/mcpseed/internal/types"
)

const (
	// ActiveStatus marks enrolled students, the only ones with attendance.
	ActiveStatus     = "재학"
	AbsentStatus     = "결석"
	currentSemester  = "2025-1"
	firstAdmission   = 2020
	lastAdmission    = 2024
	fallbackChance   = 0.1
	highTierRare     = 0.3
	normalTierRare   = 0.35
	baselineRateLow  = 0.7
	baselineRateHigh = 0.95
)

var (
	departments = []string{
		"컴퓨터공학과", "경영학과", "국어국문학과", "영어영문학과", "수학과", "물리학과",
		"화학과", "생물학과", "미술학과", "음악학과", "체육학과", "법학과",
	}
	positions       = []string{"교수", "부교수", "조교수", "겸임교수"}
	studentStatuses = []string{ActiveStatus, "휴학", "졸업", "제적"}
	coursePrefixes  = []string{"CS", "BU", "KL", "EN", "MA", "PH", "CH", "BI", "AR", "MU", "PE", "LA"}
	courseKinds     = []string{"이론", "실습", "세미나", "특강"}
	semesters       = []string{"2024-1", "2024-2", "2025-1"}

	presentOutcomes = seeder.MustDistribution(
		[]string{"출석", "지각", "조퇴"},
		[]float64{0.85, 0.1, 0.05},
		nil,
	)
)

// LongAbsenceQuota builds the quota steering how many active students get a
// low attendance propensity.
func LongAbsenceQuota(cfg config.Academic) seeder.QuotaTarget {
	return seeder.QuotaTarget{
		Target:         cfg.LongAbsentTarget,
		HighShare:      cfg.LongAbsentHighShare,
		Threshold:      cfg.HighGPAThreshold,
		FallbackChance: fallbackChance,
		HighRare:       highTierRare,
		FallbackRare:   normalTierRare,
		BaselineMin:    baselineRateLow,
		BaselineMax:    baselineRateHigh,
	}
}

// Academic is mcp5: professors, students, courses, enrollments, attendance
// and grades.
func Academic() seeder.Domain {
	return seeder.Domain{
		Name:    "mcp5",
		Title:   "academic records",
		Ordinal: 5,
		Tables: []types.SchemaTable{
			{Name: "students", Columns: []types.SchemaColumn{
				types.Serial("student_id"),
				types.Text("student_number").Unique(),
				types.Text("name"),
				types.Int("grade"),
				types.Text("major"),
				types.Date("admission_date"),
				types.Text("status"),
				types.Numeric("gpa", 3, 2),
			}},
			{Name: "professors", Columns: []types.SchemaColumn{
				types.Serial("prof_id"),
				types.Text("name"),
				types.Text("dept"),
				types.Text("position"),
			}},
			{Name: "courses", Columns: []types.SchemaColumn{
				types.Serial("course_id"),
				types.Text("course_code"),
				types.Text("course_name"),
				types.Int("credits"),
				types.Text("semester"),
				types.References("prof_id", "professors", "prof_id"),
				types.Int("max_students"),
			}},
			{Name: "enrollments", Columns: []types.SchemaColumn{
				types.Serial("enrollment_id"),
				types.References("student_id", "students", "student_id"),
				types.References("course_id", "courses", "course_id"),
				types.Text("semester"),
				types.Date("enrollment_date"),
			}},
			{Name: "attendance", Columns: []types.SchemaColumn{
				types.Serial("attendance_id"),
				types.References("student_id", "students", "student_id"),
				types.References("course_id", "courses", "course_id"),
				types.Date("attendance_date"),
				types.Text("status"),
				types.Text("semester"),
			}},
			{Name: "grades", Columns: []types.SchemaColumn{
				types.Serial("grade_id"),
				types.References("student_id", "students", "student_id"),
				types.References("course_id", "courses", "course_id"),
				types.Text("semester"),
				types.Numeric("midterm_score", 5, 2),
				types.Numeric("final_score", 5, 2),
				types.Numeric("assignment_score", 5, 2),
				types.Numeric("total_score", 5, 2),
				types.Text("letter_grade"),
				types.Numeric("grade_point", 2, 1),
			}},
		},
		Sentinel: "students",
		Populate: populateAcademic,
	}
}

type student struct {
	id     int64
	gpa    float64
	status string
}

type enrollment struct {
	student int64
	course  int64
}

// academicRun carries what later passes need from earlier ones, so the quota
// pass and grade pass do not read rows back from the store.
type academicRun struct {
	*seeder.Run
	students    []student
	byID        map[int64]student
	enrollments []enrollment
}

func populateAcademic(ctx context.Context, run *seeder.Run) error {
	a := &academicRun{Run: run, byID: make(map[int64]student)}
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"professors", a.professors},
		{"students", a.seedStudents},
		{"courses", a.courses},
		{"enrollments", a.seedEnrollments},
		{"attendance", a.attendance},
		{"grades", a.grades},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("academic %s: %w", step.name, err)
		}
	}
	return nil
}

func (a *academicRun) professors(ctx context.Context) error {
	g := a.Gen
	return a.Batch(ctx, "professors", a.Config.Counts.Professors, func(int) error {
		_, err := a.Insert(ctx, "professors",
			[]string{"name", "dept", "position"},
			g.Name(),
			seeder.Pick(g, departments),
			seeder.Pick(g, positions),
		)
		return err
	})
}

// seedStudents inserts the high-GPA batch and then the normal batch. Both
// draw student numbers from one counter so numbers never collide.
func (a *academicRun) seedStudents(ctx context.Context) error {
	g := a.Gen
	total := a.Config.Counts.Students
	high := int(float64(total) * a.Config.Academic.HighGPARatio)
	refYear := g.Now().Year()
	counter := 0

	return a.Batch(ctx, "students", total, func(i int) error {
		var gpa float64
		if i < high {
			gpa = seeder.Round2(g.FloatBetween(3.8, 4.5))
		} else {
			gpa = seeder.Round2(g.FloatBetween(1.0, 3.9))
		}
		year := g.IntBetween(firstAdmission, lastAdmission)
		counter++
		status := seeder.Pick(g, studentStatuses)
		id, err := a.Insert(ctx, "students",
			[]string{"student_number", "name", "grade", "major", "admission_date", "status", "gpa"},
			StudentNumber(year, counter),
			g.Name(),
			g.IntBetween(1, 4),
			seeder.Pick(g, departments),
			g.DateBetween(seeder.YearsAgo(max(refYear-year, 0)), seeder.Today),
			status,
			gpa,
		)
		if err != nil {
			return err
		}
		s := student{id: id, gpa: gpa, status: status}
		a.students = append(a.students, s)
		a.byID[id] = s
		return nil
	})
}

// StudentNumber joins the admission year and a zero-padded sequence number.
func StudentNumber(admissionYear, seq int) string {
	return fmt.Sprintf("%d%05d", admissionYear, seq)
}

func (a *academicRun) courses(ctx context.Context) error {
	g := a.Gen
	return a.Batch(ctx, "courses", a.Config.Counts.Courses, func(int) error {
		prof, err := a.Pick(ctx, "professors")
		if err != nil {
			return err
		}
		_, err = a.Insert(ctx, "courses",
			[]string{"course_code", "course_name", "credits", "semester", "prof_id", "max_students"},
			fmt.Sprintf("%s%d", seeder.Pick(g, coursePrefixes), g.IntBetween(100, 499)),
			g.CatchPhrase()+" "+seeder.Pick(g, courseKinds),
			g.IntBetween(1, 3),
			seeder.Pick(g, semesters),
			prof,
			g.IntBetween(30, 120),
		)
		return err
	})
}

func (a *academicRun) seedEnrollments(ctx context.Context) error {
	g := a.Gen
	return a.Batch(ctx, "enrollments", a.Config.Counts.Enrollments, func(int) error {
		sid, err := a.Pick(ctx, "students")
		if err != nil {
			return err
		}
		cid, err := a.Pick(ctx, "courses")
		if err != nil {
			return err
		}
		_, err = a.Insert(ctx, "enrollments",
			[]string{"student_id", "course_id", "semester", "enrollment_date"},
			sid, cid,
			seeder.Pick(g, semesters),
			g.DateBetween(seeder.MonthsAgo(6), seeder.Today),
		)
		if err != nil {
			return err
		}
		a.enrollments = append(a.enrollments, enrollment{student: sid, course: cid})
		return nil
	})
}

// attendance assigns each active student an attendance propensity under the
// long-absence quota and expands it into one record per enrolled course per
// session.
func (a *academicRun) attendance(ctx context.Context) error {
	g := a.Gen
	var subjects []seeder.Subject
	for _, s := range a.students {
		if s.status == ActiveStatus {
			subjects = append(subjects, seeder.Subject{ID: s.id, Score: s.gpa})
		}
	}

	quota := LongAbsenceQuota(a.Config.Academic)
	res, err := seeder.AssignPropensities(g.Rand(), subjects, quota)
	if err != nil {
		return err
	}
	a.RecordQuota(quota, res)
	a.Logf("  🎯 long-absent students: %d of %d (high tier %d/%d, normal tier %d)",
		res.Rare, quota.Target, res.RareHigh, quota.HighQuota(), res.RareNormal)

	courses := make(map[int64][]int64)
	for _, e := range a.enrollments {
		courses[e.student] = append(courses[e.student], e.course)
	}

	sessions := a.Config.Academic.SessionsPerCourse
	for _, asg := range res.Assignments {
		sid := asg.Subject.ID
		for _, cid := range courses[sid] {
			outcomes := seeder.ExpandTrials(g.Rand(), asg.Propensity, sessions, presentOutcomes, AbsentStatus)
			for _, status := range outcomes {
				if err := ctx.Err(); err != nil {
					return err
				}
				_, err := a.Insert(ctx, "attendance",
					[]string{"student_id", "course_id", "attendance_date", "status", "semester"},
					sid, cid,
					g.DateBetween(seeder.MonthsAgo(4), seeder.Today),
					status,
					currentSemester,
				)
				if err != nil {
					return err
				}
			}
		}
	}
	a.Logf("  ✓ attendance: %d rows", a.Counts()["attendance"])
	return nil
}

// grades writes one row per distinct (student, course) enrollment pair.
func (a *academicRun) grades(ctx context.Context) error {
	g := a.Gen
	seen := make(map[enrollment]bool, len(a.enrollments))
	var pairs []enrollment
	for _, e := range a.enrollments {
		if !seen[e] {
			seen[e] = true
			pairs = append(pairs, e)
		}
	}

	threshold := a.Config.Academic.HighGPAThreshold
	return a.Batch(ctx, "grades", len(pairs), func(i int) error {
		e := pairs[i]
		s, ok := a.byID[e.student]
		if !ok {
			return fmt.Errorf("student %d was not generated in this run", e.student)
		}
		gr := SynthesizeGrade(g, GradeDistribution(s.gpa >= threshold))
		_, err := a.Insert(ctx, "grades",
			[]string{"student_id", "course_id", "semester", "midterm_score", "final_score",
				"assignment_score", "total_score", "letter_grade", "grade_point"},
			e.student, e.course, currentSemester,
			gr.Midterm, gr.Final, gr.Assignment, gr.Total,
			gr.Letter, gr.Point,
		)
		return err
	})
}
