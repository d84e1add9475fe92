package seeder

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type Status string

const (
	StatusSeeded  Status = "seeded"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

type QuotaSummary struct {
	Target     int `yaml:"target"`
	HighQuota  int `yaml:"high_quota"`
	Subjects   int `yaml:"subjects"`
	Rare       int `yaml:"rare"`
	RareHigh   int `yaml:"rare_high"`
	RareNormal int `yaml:"rare_normal"`
}

type DomainReport struct {
	Name            string           `yaml:"name"`
	Status          Status           `yaml:"status"`
	DatabaseCreated bool             `yaml:"database_created"`
	Error           string           `yaml:"error,omitempty"`
	Duration        time.Duration    `yaml:"duration"`
	Rows            map[string]int64 `yaml:"rows,omitempty"`
	Quota           *QuotaSummary    `yaml:"quota,omitempty"`
}

type Report struct {
	RunID        string         `yaml:"run_id"`
	StartedAt    time.Time      `yaml:"started_at"`
	ReferenceAt  time.Time      `yaml:"reference_time"`
	Provider     string         `yaml:"provider"`
	Seed         int64          `yaml:"seed"`
	LinkStrategy string         `yaml:"link_strategy"`
	Parallel     bool           `yaml:"parallel"`
	Domains      []DomainReport `yaml:"domains"`
}

func NewReport(provider string, seed int64, strategy string, now time.Time) *Report {
	return &Report{
		RunID:        uuid.NewString(),
		StartedAt:    time.Now().UTC(),
		ReferenceAt:  now,
		Provider:     provider,
		Seed:         seed,
		LinkStrategy: strategy,
	}
}

func (r *Report) Domain(name string) (DomainReport, bool) {
	for _, d := range r.Domains {
		if d.Name == name {
			return d, true
		}
	}
	return DomainReport{}, false
}

func (r *Report) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

func (r *Report) WriteFile(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}
