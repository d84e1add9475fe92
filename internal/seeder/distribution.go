package seeder

import (
	"fmt"
	"math/rand"
)

// DistributionSpec is a weighted categorical distribution over an ordered
// label set. Values, when present, maps each label to a fixed number.
type DistributionSpec struct {
	Labels  []string
	Weights []float64
	Values  []float64

	total float64
}

func NewDistribution(labels []string, weights []float64) (DistributionSpec, error) {
	return NewValuedDistribution(labels, weights, nil)
}

func NewValuedDistribution(labels []string, weights, values []float64) (DistributionSpec, error) {
	if len(labels) == 0 {
		return DistributionSpec{}, fmt.Errorf("distribution needs at least one label")
	}
	if len(weights) != len(labels) {
		return DistributionSpec{}, fmt.Errorf("distribution has %d labels but %d weights", len(labels), len(weights))
	}
	if values != nil && len(values) != len(labels) {
		return DistributionSpec{}, fmt.Errorf("distribution has %d labels but %d values", len(labels), len(values))
	}
	seen := make(map[string]bool, len(labels))
	var total float64
	for i, w := range weights {
		if w < 0 {
			return DistributionSpec{}, fmt.Errorf("negative weight for label %s", labels[i])
		}
		if seen[labels[i]] {
			return DistributionSpec{}, fmt.Errorf("duplicate label %s", labels[i])
		}
		seen[labels[i]] = true
		total += w
	}
	if total == 0 {
		return DistributionSpec{}, fmt.Errorf("distribution weights sum to zero")
	}
	return DistributionSpec{Labels: labels, Weights: weights, Values: values, total: total}, nil
}

// MustDistribution panics on an invalid spec. For package-level tables.
func MustDistribution(labels []string, weights, values []float64) DistributionSpec {
	d, err := NewValuedDistribution(labels, weights, values)
	if err != nil {
		panic(err)
	}
	return d
}

// Draw samples one label. Zero-weight labels are never returned.
func (d DistributionSpec) Draw(r *rand.Rand) string {
	x := r.Float64() * d.total
	last := 0
	for i, w := range d.Weights {
		if w == 0 {
			continue
		}
		last = i
		if x < w {
			return d.Labels[i]
		}
		x -= w
	}
	return d.Labels[last]
}

// ValueOf returns the number mapped to label.
func (d DistributionSpec) ValueOf(label string) (float64, bool) {
	if d.Values == nil {
		return 0, false
	}
	for i, l := range d.Labels {
		if l == label {
			return d.Values[i], true
		}
	}
	return 0, false
}
