package seeder

import (
	"fmt"
	"math"
	"math/rand"
)

type Tier int

const (
	TierHigh Tier = iota
	TierNormal
)

func (t Tier) String() string {
	if t == TierHigh {
		return "high"
	}
	return "normal"
}

// Subject is one entity the quota engine assigns a propensity to. Score is
// the already generated attribute the tiers are cut on.
type Subject struct {
	ID    int64
	Score float64
}

// QuotaTarget caps how many subjects receive the rare propensity. HighShare
// of the target is reserved for the high tier and filled first. Beyond that
// the remainder is drawn from the normal tier with FallbackChance per subject.
type QuotaTarget struct {
	Target         int
	HighShare      float64
	Threshold      float64
	FallbackChance float64

	HighRare     float64
	FallbackRare float64
	BaselineMin  float64
	BaselineMax  float64
}

func (q QuotaTarget) Validate() error {
	if q.Target < 0 {
		return fmt.Errorf("quota target must be non-negative, got %d", q.Target)
	}
	if q.HighShare < 0 || q.HighShare > 1 {
		return fmt.Errorf("high tier share must be within [0,1], got %g", q.HighShare)
	}
	if q.FallbackChance < 0 || q.FallbackChance > 1 {
		return fmt.Errorf("fallback chance must be within [0,1], got %g", q.FallbackChance)
	}
	if q.BaselineMax < q.BaselineMin {
		return fmt.Errorf("baseline range is empty: [%g,%g]", q.BaselineMin, q.BaselineMax)
	}
	return nil
}

// HighQuota is the part of the target reserved for the high tier.
func (q QuotaTarget) HighQuota() int {
	return int(math.Floor(float64(q.Target) * q.HighShare))
}

type Assignment struct {
	Subject    Subject
	Tier       Tier
	Propensity float64
	Rare       bool
}

type QuotaResult struct {
	Assignments []Assignment
	Rare        int
	RareHigh    int
	RareNormal  int
}

// Propensities indexes the assigned propensity by subject id.
func (r QuotaResult) Propensities() map[int64]float64 {
	m := make(map[int64]float64, len(r.Assignments))
	for _, a := range r.Assignments {
		m[a.Subject.ID] = a.Propensity
	}
	return m
}

// Partition splits subjects into the high tier (Score >= threshold) and the
// normal tier. Input order is kept within each tier.
func Partition(subjects []Subject, threshold float64) (high, normal []Subject) {
	for _, s := range subjects {
		if s.Score >= threshold {
			high = append(high, s)
		} else {
			normal = append(normal, s)
		}
	}
	return high, normal
}

// AssignPropensities scans the high tier then the normal tier with one
// running counter of rare assignments. The counter never passes q.Target.
func AssignPropensities(r *rand.Rand, subjects []Subject, q QuotaTarget) (QuotaResult, error) {
	if err := q.Validate(); err != nil {
		return QuotaResult{}, err
	}
	high, normal := Partition(subjects, q.Threshold)
	highQuota := q.HighQuota()
	res := QuotaResult{Assignments: make([]Assignment, 0, len(subjects))}

	baseline := func() float64 {
		return q.BaselineMin + r.Float64()*(q.BaselineMax-q.BaselineMin)
	}

	for _, s := range high {
		a := Assignment{Subject: s, Tier: TierHigh}
		if res.Rare < highQuota && res.Rare < q.Target {
			a.Propensity, a.Rare = q.HighRare, true
			res.Rare++
			res.RareHigh++
		} else {
			a.Propensity = baseline()
		}
		res.Assignments = append(res.Assignments, a)
	}

	for _, s := range normal {
		a := Assignment{Subject: s, Tier: TierNormal}
		if res.Rare < q.Target && r.Float64() < q.FallbackChance {
			a.Propensity, a.Rare = q.FallbackRare, true
			res.Rare++
			res.RareNormal++
		} else {
			a.Propensity = baseline()
		}
		res.Assignments = append(res.Assignments, a)
	}

	return res, nil
}

// ExpandTrials runs one independent trial per unit. A success draws from
// success; a failure yields the failure label.
func ExpandTrials(r *rand.Rand, propensity float64, units int, success DistributionSpec, failure string) []string {
	out := make([]string, units)
	for i := range out {
		if r.Float64() < propensity {
			out[i] = success.Draw(r)
		} else {
			out[i] = failure
		}
	}
	return out
}
