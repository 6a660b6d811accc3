// Package validator checks accepted day records for structural and
// vocabulary defects. Validation is pure: it never touches the network
// or the filesystem.
package validator

import (
	"fmt"

	"childsim/internal/model"
	"childsim/internal/vocab"
)

// Violation codes, in the order checks run.
const (
	CodeHourCoverage   = "hour_coverage"
	CodeMinuteCoverage = "minute_coverage"
	CodeEmptyField     = "empty_field"
	CodeBadLabel       = "bad_label"
	CodeVocabulary     = "vocabulary"
)

// Violation is one defect found in a day record.
type Violation struct {
	Code     string `json:"code"`
	Sequence string `json:"sequence"` // "external" or "internal"
	Hour     int    `json:"hour"`
	Minute   int    `json:"minute"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
}

// Report is the outcome of validating one day.
type Report struct {
	Passed     bool        `json:"passed"`
	Violations []Violation `json:"violations"`
}

// Validate checks day against band: hour coverage, minute coverage,
// required fields, label values, then vocabulary constraints over every
// free-text field.
func Validate(day *model.DayRecord, band vocab.Band) Report {
	var vs []Violation

	vs = append(vs, checkExternalHours(day)...)
	vs = append(vs, checkInternalHours(day)...)
	vs = append(vs, checkMinuteGrids(day)...)
	vs = append(vs, checkFields(day)...)
	vs = append(vs, checkLabels(day)...)
	vs = append(vs, checkVocabulary(day, band)...)

	return Report{Passed: len(vs) == 0, Violations: vs}
}

// WindowsWithViolations returns the distinct hours that carry at least
// one violation, for targeted regeneration.
func WindowsWithViolations(r Report) []int {
	seen := map[int]bool{}
	var hours []int
	for _, v := range r.Violations {
		if !seen[v.Hour] {
			seen[v.Hour] = true
			hours = append(hours, v.Hour)
		}
	}
	return hours
}

func checkExternalHours(day *model.DayRecord) []Violation {
	return checkHourSequence("external", func() []int {
		out := make([]int, len(day.ExternalReality))
		for i, h := range day.ExternalReality {
			out[i] = h.Hour
		}
		return out
	}())
}

func checkInternalHours(day *model.DayRecord) []Violation {
	return checkHourSequence("internal", func() []int {
		out := make([]int, len(day.InternalMonologue))
		for i, h := range day.InternalMonologue {
			out[i] = h.Hour
		}
		return out
	}())
}

func checkHourSequence(seq string, hours []int) []Violation {
	var vs []Violation
	seen := map[int]int{}
	for _, h := range hours {
		seen[h]++
	}
	for hour := 0; hour < 24; hour++ {
		switch {
		case seen[hour] == 0:
			vs = append(vs, Violation{
				Code: CodeHourCoverage, Sequence: seq, Hour: hour,
				Message: fmt.Sprintf("hour %d missing from %s sequence", hour, seq),
			})
		case seen[hour] > 1:
			vs = append(vs, Violation{
				Code: CodeHourCoverage, Sequence: seq, Hour: hour,
				Message: fmt.Sprintf("hour %d appears %d times in %s sequence", hour, seen[hour], seq),
			})
		}
	}
	for _, h := range hours {
		if h < 0 || h > 23 {
			vs = append(vs, Violation{
				Code: CodeHourCoverage, Sequence: seq, Hour: h,
				Message: fmt.Sprintf("hour %d out of range in %s sequence", h, seq),
			})
		}
	}
	return vs
}

func checkMinuteGrids(day *model.DayRecord) []Violation {
	step := day.MinuteStep
	if step <= 0 {
		step = 1
	}
	want := (59 / step) + 1

	var vs []Violation
	for _, h := range day.ExternalReality {
		minutes := make([]int, len(h.Entries))
		for i, e := range h.Entries {
			minutes[i] = e.Minute
		}
		vs = append(vs, checkMinuteGrid("external", h.Hour, minutes, step, want)...)
	}
	for _, h := range day.InternalMonologue {
		minutes := make([]int, len(h.Entries))
		for i, e := range h.Entries {
			minutes[i] = e.Minute
		}
		vs = append(vs, checkMinuteGrid("internal", h.Hour, minutes, step, want)...)
	}
	return vs
}

func checkMinuteGrid(seq string, hour int, minutes []int, step, want int) []Violation {
	var vs []Violation
	if len(minutes) != want {
		vs = append(vs, Violation{
			Code: CodeMinuteCoverage, Sequence: seq, Hour: hour,
			Message: fmt.Sprintf("hour %d has %d entries, want %d", hour, len(minutes), want),
		})
		return vs
	}
	for i, m := range minutes {
		if m != i*step {
			vs = append(vs, Violation{
				Code: CodeMinuteCoverage, Sequence: seq, Hour: hour, Minute: m,
				Message: fmt.Sprintf("hour %d entry %d has minute %d, want %d", hour, i, m, i*step),
			})
		}
	}
	return vs
}

func checkFields(day *model.DayRecord) []Violation {
	var vs []Violation
	for _, h := range day.ExternalReality {
		for _, e := range h.Entries {
			for _, f := range e.Fields() {
				if f.Value == "" {
					vs = append(vs, Violation{
						Code: CodeEmptyField, Sequence: "external", Hour: h.Hour, Minute: e.Minute,
						Field:   f.Name,
						Message: fmt.Sprintf("empty %s at hour %d minute %d", f.Name, h.Hour, e.Minute),
					})
				}
			}
		}
	}
	for _, h := range day.InternalMonologue {
		for _, e := range h.Entries {
			for _, f := range e.Components.Fields() {
				if f.Value == "" {
					vs = append(vs, Violation{
						Code: CodeEmptyField, Sequence: "internal", Hour: h.Hour, Minute: e.Minute,
						Field:   f.Name,
						Message: fmt.Sprintf("empty %s at hour %d minute %d", f.Name, h.Hour, e.Minute),
					})
				}
			}
		}
	}
	return vs
}

func checkLabels(day *model.DayRecord) []Violation {
	var vs []Violation
	bad := func(h, m int, field, value, allowed string) Violation {
		return Violation{
			Code: CodeBadLabel, Sequence: "internal", Hour: h, Minute: m, Field: field,
			Message: fmt.Sprintf("%s %q at hour %d minute %d not in {%s}", field, value, h, m, allowed),
		}
	}
	for _, h := range day.InternalMonologue {
		for _, e := range h.Entries {
			l := e.Labels
			if !model.ValidArousalLevels[l.ArousalLevel] {
				vs = append(vs, bad(h.Hour, e.Minute, "arousal_level", l.ArousalLevel, "low, medium, high"))
			}
			if !model.ValidEmotions[l.DominantEmotion] {
				vs = append(vs, bad(h.Hour, e.Minute, "dominant_emotion", l.DominantEmotion, "known emotions"))
			}
			if !model.ValidCognitiveLoads[l.CognitiveLoad] {
				vs = append(vs, bad(h.Hour, e.Minute, "cognitive_load", l.CognitiveLoad, "minimal, low, medium, high"))
			}
			if !model.ValidSocialContexts[l.SocialContext] {
				vs = append(vs, bad(h.Hour, e.Minute, "social_context", l.SocialContext, "alone, with_caregivers, with_peers, public"))
			}
		}
	}
	return vs
}

func checkVocabulary(day *model.DayRecord, band vocab.Band) []Violation {
	var vs []Violation

	// External prose is adult register: forbidden tokens still apply,
	// sentence complexity does not.
	externalBand := band
	externalBand.MaxSentenceWords = 0
	for _, h := range day.ExternalReality {
		for _, e := range h.Entries {
			for _, f := range e.Fields() {
				for _, v := range vocab.Check(f.Value, externalBand) {
					vs = append(vs, Violation{
						Code: CodeVocabulary, Sequence: "external", Hour: h.Hour, Minute: e.Minute,
						Field:   f.Name,
						Message: fmt.Sprintf("hour %d minute %d %s: %s", h.Hour, e.Minute, f.Name, v.Message),
					})
				}
			}
		}
	}

	for _, h := range day.InternalMonologue {
		for _, e := range h.Entries {
			for _, f := range e.Components.Fields() {
				for _, v := range vocab.Check(f.Value, band) {
					vs = append(vs, Violation{
						Code: CodeVocabulary, Sequence: "internal", Hour: h.Hour, Minute: e.Minute,
						Field:   f.Name,
						Message: fmt.Sprintf("hour %d minute %d %s: %s", h.Hour, e.Minute, f.Name, v.Message),
					})
				}
			}
		}
	}
	return vs
}
