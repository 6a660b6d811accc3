package driver

import (
	"encoding/json"
	"fmt"
	"strings"

	"childsim/internal/model"
	"childsim/internal/prompt"
)

// chunk is the parsed, structurally verified content of one window.
type chunk struct {
	Window   prompt.Window
	External []model.ExternalHour
	Internal []model.InternalHour
}

// wireDay is the response shape the service is asked to produce.
type wireDay struct {
	ExternalReality   []model.ExternalHour `json:"external_reality"`
	InternalMonologue []model.InternalHour `json:"internal_monologue"`
}

// parseChunk decodes a raw response for window w and checks its
// structural coverage: exactly the window's hours, in order, each with
// the full minute grid in both sequences. Any defect is a
// MalformedError, which the retry loop treats as transient.
func parseChunk(raw string, w prompt.Window) (*chunk, error) {
	cleaned := stripFences(raw)

	var wire wireDay
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return nil, &MalformedError{Reason: "invalid json", Err: err}
	}

	if err := checkHours("external_reality", externalHourNums(wire.ExternalReality), w); err != nil {
		return nil, err
	}
	if err := checkHours("internal_monologue", internalHourNums(wire.InternalMonologue), w); err != nil {
		return nil, err
	}

	for _, h := range wire.ExternalReality {
		if err := checkMinutes(fmt.Sprintf("external_reality hour %d", h.Hour), externalMinutes(h.Entries), w); err != nil {
			return nil, err
		}
	}
	for _, h := range wire.InternalMonologue {
		if err := checkMinutes(fmt.Sprintf("internal_monologue hour %d", h.Hour), internalMinutes(h.Entries), w); err != nil {
			return nil, err
		}
	}

	return &chunk{Window: w, External: wire.ExternalReality, Internal: wire.InternalMonologue}, nil
}

// extractExternal validates the first-pass response and returns its
// canonical JSON for conditioning the second pass.
func extractExternal(raw string, w prompt.Window) (string, error) {
	cleaned := stripFences(raw)

	var wire struct {
		ExternalReality []model.ExternalHour `json:"external_reality"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return "", &MalformedError{Reason: "invalid external json", Err: err}
	}
	if err := checkHours("external_reality", externalHourNums(wire.ExternalReality), w); err != nil {
		return "", err
	}
	for _, h := range wire.ExternalReality {
		if err := checkMinutes(fmt.Sprintf("external_reality hour %d", h.Hour), externalMinutes(h.Entries), w); err != nil {
			return "", err
		}
	}

	out, err := json.Marshal(map[string]any{"external_reality": wire.ExternalReality})
	if err != nil {
		return "", fmt.Errorf("re-encode external: %w", err)
	}
	return string(out), nil
}

// combinePasses merges the first-pass external JSON with the
// second-pass internal response into the combined wire shape.
func combinePasses(externalJSON, internalRaw string) (string, error) {
	var ext struct {
		ExternalReality []model.ExternalHour `json:"external_reality"`
	}
	if err := json.Unmarshal([]byte(externalJSON), &ext); err != nil {
		return "", &MalformedError{Reason: "invalid external json", Err: err}
	}

	var in struct {
		InternalMonologue []model.InternalHour `json:"internal_monologue"`
	}
	if err := json.Unmarshal([]byte(stripFences(internalRaw)), &in); err != nil {
		return "", &MalformedError{Reason: "invalid internal json", Err: err}
	}

	out, err := json.Marshal(wireDay{
		ExternalReality:   ext.ExternalReality,
		InternalMonologue: in.InternalMonologue,
	})
	if err != nil {
		return "", fmt.Errorf("combine passes: %w", err)
	}
	return string(out), nil
}

// stripFences removes a markdown code fence if the service wrapped its
// JSON in one despite instructions.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func externalHourNums(hours []model.ExternalHour) []int {
	out := make([]int, len(hours))
	for i, h := range hours {
		out[i] = h.Hour
	}
	return out
}

func internalHourNums(hours []model.InternalHour) []int {
	out := make([]int, len(hours))
	for i, h := range hours {
		out[i] = h.Hour
	}
	return out
}

func externalMinutes(entries []model.ExternalEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Minute
	}
	return out
}

func internalMinutes(entries []model.InternalEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Minute
	}
	return out
}

// checkHours requires got to be exactly the window's hours in order.
func checkHours(seq string, got []int, w prompt.Window) error {
	if len(got) != w.Hours() {
		return &MalformedError{Reason: fmt.Sprintf("%s has %d hours, want %d for %s", seq, len(got), w.Hours(), w)}
	}
	for i, h := range got {
		want := w.StartHour + i
		if h != want {
			return &MalformedError{Reason: fmt.Sprintf("%s hour at index %d is %d, want %d", seq, i, h, want)}
		}
	}
	return nil
}

// checkMinutes requires got to be exactly the minute grid 0, step,
// 2*step, ... within an hour.
func checkMinutes(where string, got []int, w prompt.Window) error {
	want := w.EntriesPerHour()
	if len(got) != want {
		return &MalformedError{Reason: fmt.Sprintf("%s has %d entries, want %d", where, len(got), want)}
	}
	step := w.MinuteStep
	if step <= 0 {
		step = 1
	}
	for i, m := range got {
		if m != i*step {
			return &MalformedError{Reason: fmt.Sprintf("%s entry %d has minute %d, want %d", where, i, m, i*step)}
		}
	}
	return nil
}
