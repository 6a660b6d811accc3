// Package timeline maps calendar dates to developmental stages.
package timeline

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrOutOfRange is returned when a date falls outside the covered span.
	ErrOutOfRange = errors.New("timeline: date out of range")
	// ErrMalformedTimeline is returned when stages do not partition the span.
	ErrMalformedTimeline = errors.New("timeline: stages do not partition the five-year span")
)

// Stage is one contiguous developmental window.
type Stage struct {
	ID                    string    `yaml:"id"`
	Start                 time.Time `yaml:"start"`
	End                   time.Time `yaml:"end"`
	VocabularyTier        string    `yaml:"vocabulary_tier"`
	BehavioralDescriptors []string  `yaml:"behavioral_descriptors"`
	Milestones            []string  `yaml:"milestones"`
	DominantEmotions      []string  `yaml:"dominant_emotions"`
	RoutineTags           []string  `yaml:"routine_tags"`
	CognitiveFocus        string    `yaml:"cognitive_focus"`
}

// Timeline is an ordered, gap-free sequence of stages covering birth
// through the day before the fifth birthday.
type Timeline struct {
	Birthdate time.Time `yaml:"birthdate"`
	Stages    []Stage   `yaml:"stages"`
}

// New validates that stages partition the five-year span exactly:
// the first stage starts on the birthdate, each stage starts the day
// after its predecessor ends, and the last ends the day before the
// fifth birthday.
func New(birthdate time.Time, stages []Stage) (*Timeline, error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("%w: no stages", ErrMalformedTimeline)
	}
	birthdate = midnight(birthdate)
	if !midnight(stages[0].Start).Equal(birthdate) {
		return nil, fmt.Errorf("%w: first stage starts %s, want %s",
			ErrMalformedTimeline, stages[0].Start.Format("2006-01-02"), birthdate.Format("2006-01-02"))
	}
	for i := range stages {
		st := &stages[i]
		if midnight(st.End).Before(midnight(st.Start)) {
			return nil, fmt.Errorf("%w: stage %s ends before it starts", ErrMalformedTimeline, st.ID)
		}
		if i > 0 {
			want := midnight(stages[i-1].End).AddDate(0, 0, 1)
			if !midnight(st.Start).Equal(want) {
				return nil, fmt.Errorf("%w: stage %s starts %s, want %s",
					ErrMalformedTimeline, st.ID, st.Start.Format("2006-01-02"), want.Format("2006-01-02"))
			}
		}
	}
	wantEnd := birthdate.AddDate(5, 0, 0).AddDate(0, 0, -1)
	last := stages[len(stages)-1]
	if !midnight(last.End).Equal(wantEnd) {
		return nil, fmt.Errorf("%w: last stage ends %s, want %s",
			ErrMalformedTimeline, last.End.Format("2006-01-02"), wantEnd.Format("2006-01-02"))
	}
	return &Timeline{Birthdate: birthdate, Stages: stages}, nil
}

// StageFor returns the stage containing date, or ErrOutOfRange.
func (t *Timeline) StageFor(date time.Time) (*Stage, error) {
	d := midnight(date)
	for i := range t.Stages {
		st := &t.Stages[i]
		if !d.Before(midnight(st.Start)) && !d.After(midnight(st.End)) {
			return st, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrOutOfRange, date.Format("2006-01-02"))
}

// TierFor returns the vocabulary tier in effect on date.
func (t *Timeline) TierFor(date time.Time) (string, error) {
	st, err := t.StageFor(date)
	if err != nil {
		return "", err
	}
	return st.VocabularyTier, nil
}

// Load reads and validates a timeline YAML file.
func Load(path string) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timeline: %w", err)
	}
	var raw Timeline
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse timeline: %w", err)
	}
	return New(raw.Birthdate, raw.Stages)
}

// Save writes the timeline to path as YAML.
func (t *Timeline) Save(path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal timeline: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write timeline: %w", err)
	}
	return nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
