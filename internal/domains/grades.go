package domains

import (
	"github.com/Rana718/mcpseed/internal/seeder"
)

const FailingLetter = "F"

var (
	letterGrades = []string{"A+", "A", "B+", "B", "C+", "C", "D+", "D", "F"}
	gradePoints  = []float64{4.5, 4.0, 3.5, 3.0, 2.5, 2.0, 1.5, 1.0, 0.0}

	highTierGrades = seeder.MustDistribution(letterGrades,
		[]float64{0.4, 0.3, 0.15, 0.1, 0.03, 0.02, 0, 0, 0}, gradePoints)
	normalTierGrades = seeder.MustDistribution(letterGrades,
		[]float64{0.1, 0.15, 0.2, 0.25, 0.15, 0.1, 0.03, 0.02, 0}, gradePoints)
)

// Score weights of the total.
const (
	MidtermWeight    = 0.3
	FinalWeight      = 0.4
	AssignmentWeight = 0.3
)

type Grade struct {
	Letter     string
	Point      float64
	Midterm    float64
	Final      float64
	Assignment float64
	Total      float64
}

// GradePoint returns the fixed point value of a letter grade.
func GradePoint(letter string) (float64, bool) {
	return highTierGrades.ValueOf(letter)
}

// TotalScore is the weighted aggregate of the component scores.
func TotalScore(midterm, final, assignment float64) float64 {
	return MidtermWeight*midterm + FinalWeight*final + AssignmentWeight*assignment
}

// GradeDistribution returns the letter grade weights of a GPA tier.
func GradeDistribution(highTier bool) seeder.DistributionSpec {
	if highTier {
		return highTierGrades
	}
	return normalTierGrades
}

// SynthesizeGrade draws the letter first and then component scores from the
// passing or failing range that letter implies.
func SynthesizeGrade(g *seeder.DataGenerator, dist seeder.DistributionSpec) Grade {
	letter := dist.Draw(g.Rand())
	point, _ := GradePoint(letter)

	gr := Grade{Letter: letter, Point: point}
	if letter == FailingLetter {
		gr.Midterm = seeder.Round2(g.FloatBetween(0, 59))
		gr.Final = seeder.Round2(g.FloatBetween(0, 59))
		gr.Assignment = seeder.Round2(g.FloatBetween(0, 69))
	} else {
		gr.Midterm = seeder.Round2(g.FloatBetween(60, 100))
		gr.Final = seeder.Round2(g.FloatBetween(60, 100))
		gr.Assignment = seeder.Round2(g.FloatBetween(70, 100))
	}
	gr.Total = seeder.Round2(TotalScore(gr.Midterm, gr.Final, gr.Assignment))
	return gr
}
