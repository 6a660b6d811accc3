// Package scenario loads and validates the child scenario profile.
package scenario

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Caregiver is one adult present in the child's environment.
type Caregiver struct {
	Name     string `yaml:"name"`
	Relation string `yaml:"relation"`
}

// Child describes the simulated child.
type Child struct {
	Name            string             `yaml:"name"`
	Birthdate       time.Time          `yaml:"birthdate"`
	Sex             string             `yaml:"sex"`
	Personality     map[string]float64 `yaml:"personality"`
	TemperamentTags []string           `yaml:"temperament_tags"`
}

// Environment describes the household setting.
type Environment struct {
	HomeType string `yaml:"home_type"`
	City     string `yaml:"city"`
	Timezone string `yaml:"timezone"`
	Siblings int    `yaml:"siblings"`
}

// Scenario is the full profile for one simulation subject.
type Scenario struct {
	ID          string      `yaml:"id"`
	Seed        int64       `yaml:"seed"`
	Language    string      `yaml:"language"`
	Child       Child       `yaml:"child"`
	Caregivers  []Caregiver `yaml:"caregivers"`
	Environment Environment `yaml:"environment"`
}

// Load reads and validates a scenario YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the scenario to path as YAML.
func (s *Scenario) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scenario: %w", err)
	}
	return nil
}

// Validate checks the fields a generation run depends on.
func (s *Scenario) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("scenario: id is required")
	}
	if s.Child.Name == "" {
		return fmt.Errorf("scenario: child name is required")
	}
	if s.Child.Birthdate.IsZero() {
		return fmt.Errorf("scenario: child birthdate is required")
	}
	if len(s.Caregivers) == 0 {
		return fmt.Errorf("scenario: at least one caregiver is required")
	}
	for trait, v := range s.Child.Personality {
		if v < 0 || v > 1 {
			return fmt.Errorf("scenario: personality %q out of range [0,1]: %g", trait, v)
		}
	}
	return nil
}

// AgeDaysOn returns the child's age in whole days on the given date.
func (s *Scenario) AgeDaysOn(date time.Time) int {
	d := date.Sub(s.Child.Birthdate.Truncate(24 * time.Hour))
	return int(d.Hours() / 24)
}

// AgeWeeksOn returns the child's age in whole weeks on the given date.
func (s *Scenario) AgeWeeksOn(date time.Time) int {
	return s.AgeDaysOn(date) / 7
}

// Default returns a ready-to-edit scenario with the given id.
func Default(id string) *Scenario {
	return &Scenario{
		ID:       id,
		Seed:     1,
		Language: "en",
		Child: Child{
			Name:      "Mira",
			Birthdate: time.Date(2020, 3, 14, 0, 0, 0, 0, time.UTC),
			Sex:       "female",
			Personality: map[string]float64{
				"openness":    0.7,
				"sociability": 0.6,
				"reactivity":  0.4,
			},
			TemperamentTags: []string{"curious", "easygoing"},
		},
		Caregivers: []Caregiver{
			{Name: "Ana", Relation: "mother"},
			{Name: "Tomas", Relation: "father"},
		},
		Environment: Environment{
			HomeType: "apartment",
			City:     "Lisbon",
			Timezone: "Europe/Lisbon",
			Siblings: 0,
		},
	}
}
