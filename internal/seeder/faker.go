package seeder

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Offset is a calendar distance from the reference day. Negative values lie
// in the past.
type Offset struct {
	Years, Months, Days int
}

var Today = Offset{}

func YearsAgo(n int) Offset  { return Offset{Years: -n} }
func MonthsAgo(n int) Offset { return Offset{Months: -n} }
func DaysAgo(n int) Offset   { return Offset{Days: -n} }

// DataGenerator draws field values for one domain run. Every draw goes
// through its own random source and every date window is anchored to now, so
// a fixed seed and reference time reproduce a run exactly.
type DataGenerator struct {
	rand   *rand.Rand
	now    time.Time
	locale Locale
}

func NewDataGenerator(seed int64, now time.Time, locale string) (*DataGenerator, error) {
	r := rand.New(rand.NewSource(seed))
	loc, err := NewLocale(locale, r)
	if err != nil {
		return nil, err
	}
	return &DataGenerator{rand: r, now: now, locale: loc}, nil
}

func (g *DataGenerator) Rand() *rand.Rand {
	return g.rand
}

// Now is the reference time date windows are evaluated against.
func (g *DataGenerator) Now() time.Time {
	return g.now
}

func (g *DataGenerator) Name() string {
	return g.locale.Name()
}

func (g *DataGenerator) Sentence(words int) string {
	return g.locale.Sentence(words)
}

func (g *DataGenerator) CatchPhrase() string {
	return g.locale.CatchPhrase()
}

// IntBetween draws uniformly from [min, max].
func (g *DataGenerator) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + g.rand.Intn(max-min+1)
}

// FloatBetween draws uniformly from [min, max).
func (g *DataGenerator) FloatBetween(min, max float64) float64 {
	return min + g.rand.Float64()*(max-min)
}

// Chance succeeds with probability p.
func (g *DataGenerator) Chance(p float64) bool {
	return g.rand.Float64() < p
}

// Day returns the reference day shifted by off, at midnight UTC.
func (g *DataGenerator) Day(off Offset) time.Time {
	y, m, d := g.now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(off.Years, off.Months, off.Days)
}

// DateBetween draws a day uniformly from the inclusive window [from, to].
func (g *DataGenerator) DateBetween(from, to Offset) time.Time {
	start, end := g.Day(from), g.Day(to)
	if end.Before(start) {
		start, end = end, start
	}
	span := int(end.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, g.rand.Intn(span+1))
}

// Pick returns a uniformly chosen element of options.
func Pick[T any](g *DataGenerator, options []T) T {
	return options[g.rand.Intn(len(options))]
}

// Round2 rounds to two decimal places, the scale of the NUMERIC columns.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (g *DataGenerator) String() string {
	return fmt.Sprintf("DataGenerator(now=%s)", g.now.Format(time.RFC3339))
}
