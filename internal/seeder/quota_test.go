package seeder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func longAbsence(target int) QuotaTarget {
	return QuotaTarget{
		Target:         target,
		HighShare:      0.15,
		Threshold:      4.0,
		FallbackChance: 0.1,
		HighRare:       0.3,
		FallbackRare:   0.35,
		BaselineMin:    0.7,
		BaselineMax:    0.95,
	}
}

// cohort builds n subjects; the first high of them score above the threshold.
func cohort(n, high int) []Subject {
	subjects := make([]Subject, n)
	for i := range subjects {
		score := 2.5
		if i < high {
			score = 4.2
		}
		subjects[i] = Subject{ID: int64(i + 1), Score: score}
	}
	return subjects
}

func TestPartition(t *testing.T) {
	subjects := []Subject{
		{ID: 1, Score: 3.9},
		{ID: 2, Score: 4.0},
		{ID: 3, Score: 1.2},
		{ID: 4, Score: 4.5},
	}

	high, normal := Partition(subjects, 4.0)

	assert.Equal(t, []Subject{{ID: 2, Score: 4.0}, {ID: 4, Score: 4.5}}, high)
	assert.Equal(t, []Subject{{ID: 1, Score: 3.9}, {ID: 3, Score: 1.2}}, normal)
}

func TestHighQuotaRoundsDown(t *testing.T) {
	assert.Equal(t, 40, longAbsence(270).HighQuota())
	assert.Equal(t, 0, longAbsence(6).HighQuota())
}

func TestLongAbsenceScenario(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		res, err := AssignPropensities(rand.New(rand.NewSource(seed)), cohort(3000, 600), longAbsence(270))
		require.NoError(t, err)

		assert.Equal(t, 40, res.RareHigh, "seed %d", seed)
		assert.LessOrEqual(t, res.Rare, 270, "seed %d", seed)
		assert.Equal(t, res.Rare, res.RareHigh+res.RareNormal)
		assert.Len(t, res.Assignments, 3000)
	}
}

func TestRareAssignmentsNeverExceedTarget(t *testing.T) {
	cases := []struct {
		name   string
		n      int
		high   int
		target int
	}{
		{"small target", 500, 100, 5},
		{"target above population", 50, 10, 1000},
		{"no high tier", 1000, 0, 30},
		{"all high tier", 200, 200, 20},
		{"zero target", 300, 60, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := longAbsence(tc.target)
			q.FallbackChance = 0.9
			res, err := AssignPropensities(rand.New(rand.NewSource(3)), cohort(tc.n, tc.high), q)
			require.NoError(t, err)

			rare := 0
			for _, a := range res.Assignments {
				if a.Rare {
					rare++
				}
			}
			assert.Equal(t, res.Rare, rare)
			assert.LessOrEqual(t, res.Rare, tc.target)
			assert.LessOrEqual(t, res.RareHigh, q.HighQuota())
		})
	}
}

func TestAssignedPropensities(t *testing.T) {
	res, err := AssignPropensities(rand.New(rand.NewSource(9)), cohort(1000, 200), longAbsence(270))
	require.NoError(t, err)

	for i, a := range res.Assignments {
		if i < 200 {
			assert.Equal(t, TierHigh, a.Tier)
		} else {
			assert.Equal(t, TierNormal, a.Tier)
		}

		switch {
		case a.Rare && a.Tier == TierHigh:
			assert.Equal(t, 0.3, a.Propensity)
		case a.Rare:
			assert.Equal(t, 0.35, a.Propensity)
		default:
			assert.GreaterOrEqual(t, a.Propensity, 0.7)
			assert.Less(t, a.Propensity, 0.95)
		}
	}

	// The reserved high-tier slots are filled first, in scan order.
	for i := 0; i < 40; i++ {
		assert.True(t, res.Assignments[i].Rare)
	}
	for i := 40; i < 200; i++ {
		assert.False(t, res.Assignments[i].Rare)
	}
}

func TestQuotaTargetValidate(t *testing.T) {
	assert.NoError(t, longAbsence(270).Validate())

	bad := longAbsence(-1)
	assert.Error(t, bad.Validate())

	bad = longAbsence(10)
	bad.HighShare = 1.5
	assert.Error(t, bad.Validate())

	bad = longAbsence(10)
	bad.BaselineMin, bad.BaselineMax = 0.9, 0.1
	_, err := AssignPropensities(rand.New(rand.NewSource(1)), cohort(10, 2), bad)
	assert.Error(t, err)
}

func TestExpandTrials(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	present := MustDistribution([]string{"출석", "지각", "조퇴"}, []float64{0.85, 0.1, 0.05}, nil)

	always := ExpandTrials(r, 1, 15, present, "결석")
	assert.Len(t, always, 15)
	for _, o := range always {
		assert.Contains(t, present.Labels, o)
	}

	never := ExpandTrials(r, 0, 15, present, "결석")
	for _, o := range never {
		assert.Equal(t, "결석", o)
	}

	outcomes := ExpandTrials(r, 0.3, 20000, present, "결석")
	absent := 0
	for _, o := range outcomes {
		if o == "결석" {
			absent++
		}
	}
	assert.InDelta(t, 0.7, float64(absent)/20000, 0.02)
}
