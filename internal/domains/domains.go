// Package domains declares the five seeded business schemas and the
// population logic of each.
package domains

import (
	"fmt"

	"github.com/Rana718/mcpseed/internal/seeder"
)

// All returns every domain in seeding order.
func All() []seeder.Domain {
	return []seeder.Domain{
		Ecommerce(),
		Payments(),
		Feedback(),
		PublicAdmin(),
		Academic(),
	}
}

// Select returns the named domains, or all of them when names is empty.
func Select(names []string) ([]seeder.Domain, error) {
	all := All()
	if len(names) == 0 {
		return all, nil
	}
	byName := make(map[string]seeder.Domain, len(all))
	for _, d := range all {
		byName[d.Name] = d
	}
	selected := make([]seeder.Domain, 0, len(names))
	seen := make(map[string]bool)
	for _, name := range names {
		d, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown domain: %s", name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		selected = append(selected, d)
	}
	return selected, nil
}

var segments = []string{"일반", "VIP", "기업"}
