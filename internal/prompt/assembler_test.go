package prompt

import (
	"strings"
	"testing"
	"time"

	"childsim/internal/model"
	"childsim/internal/scenario"
	"childsim/internal/timeline"
	"childsim/internal/vocab"
)

func testInputs(t *testing.T) Inputs {
	t.Helper()
	sc := scenario.Default("test")
	tl := timeline.Default(sc.Child.Birthdate)
	date := sc.Child.Birthdate.AddDate(2, 1, 0)

	stage, err := tl.StageFor(date)
	if err != nil {
		t.Fatal(err)
	}
	band, err := vocab.DefaultRegistry().BandFor(stage.VocabularyTier)
	if err != nil {
		t.Fatal(err)
	}
	return Inputs{
		Scenario: sc,
		Stage:    stage,
		Band:     band,
		Summary: model.MemorySummary{
			CoveringPeriod: model.DateRange{Start: "2022-04-01", End: "2022-04-13"},
			SalientEvents:  []string{"2022-04-13: first trip to the zoo"},
			EmergentTraits: map[string]string{"dominant_emotion": "curious"},
		},
		Date: date,
	}
}

func TestAssembleDeterministic(t *testing.T) {
	in := testInputs(t)
	w := FullDay(30)

	first := Assemble(in, w)
	for i := 0; i < 5; i++ {
		got := Assemble(in, w)
		if got.System != first.System || got.User != first.User || got.MaxTokens != first.MaxTokens {
			t.Fatalf("run %d produced a different prompt", i)
		}
	}
}

func TestAssembleEmbedsConstraints(t *testing.T) {
	in := testInputs(t)
	p := Assemble(in, FullDay(30))

	for _, want := range []string{
		in.Scenario.Child.Name,
		in.Stage.ID,
		"hours 00-23",
		"external_reality",
		"internal_monologue",
		"consciousness_components",
		"first trip to the zoo",
		"dominant_emotion: curious",
		"quantum",
	} {
		if !strings.Contains(p.System+p.User, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if p.MaxTokens != in.Band.MaxTokens {
		t.Errorf("MaxTokens = %d, want %d", p.MaxTokens, in.Band.MaxTokens)
	}
}

func TestAssembleEmptySummary(t *testing.T) {
	in := testInputs(t)
	in.Summary = model.MemorySummary{}

	p := Assemble(in, FullDay(30))
	if !strings.Contains(p.User, "first recorded day") {
		t.Error("empty summary should state there is no history")
	}
}

func TestAssembleInternalCarriesExternal(t *testing.T) {
	in := testInputs(t)
	w := Window{StartHour: 0, EndHour: 11, MinuteStep: 30}
	externalJSON := `{"external_reality":[{"hour":0,"entries":[]}]}`

	p := AssembleInternal(in, w, externalJSON)
	if !strings.Contains(p.User, externalJSON) {
		t.Error("second pass prompt missing the external sequence")
	}
	if !strings.Contains(p.User, "internal_monologue") {
		t.Error("second pass prompt missing internal schema")
	}
}

func TestFullDay(t *testing.T) {
	w := FullDay(30)
	if w.StartHour != 0 || w.EndHour != 23 {
		t.Errorf("FullDay = %+v", w)
	}
	if w.Hours() != 24 || w.EntriesPerHour() != 2 {
		t.Errorf("Hours = %d, EntriesPerHour = %d", w.Hours(), w.EntriesPerHour())
	}
}

func TestHalves(t *testing.T) {
	ws := Halves(1)
	if len(ws) != 2 {
		t.Fatalf("Halves = %d windows", len(ws))
	}
	if ws[0].StartHour != 0 || ws[0].EndHour != 11 || ws[1].StartHour != 12 || ws[1].EndHour != 23 {
		t.Errorf("Halves = %+v", ws)
	}
	if ws[0].EntriesPerHour() != 60 {
		t.Errorf("EntriesPerHour = %d, want 60", ws[0].EntriesPerHour())
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		chunkHours int
		want       int
	}{
		{12, 2},
		{6, 4},
		{8, 3},
		{24, 1},
		{0, 1},
	}
	for _, tt := range tests {
		ws := Split(tt.chunkHours, 1)
		if len(ws) != tt.want {
			t.Errorf("Split(%d) = %d windows, want %d", tt.chunkHours, len(ws), tt.want)
			continue
		}
		// Windows must tile the day exactly.
		next := 0
		for _, w := range ws {
			if w.StartHour != next {
				t.Errorf("Split(%d): window starts at %d, want %d", tt.chunkHours, w.StartHour, next)
			}
			next = w.EndHour + 1
		}
		if next != 24 {
			t.Errorf("Split(%d): coverage ends at %d, want 24", tt.chunkHours, next)
		}
	}
}

func TestSplitAbsorbsRemainder(t *testing.T) {
	ws := Split(7, 1)
	last := ws[len(ws)-1]
	if last.EndHour != 23 {
		t.Errorf("last window ends at %d, want 23", last.EndHour)
	}
	for _, w := range ws[:len(ws)-1] {
		if w.Hours() != 7 {
			t.Errorf("window %s has %d hours, want 7", w, w.Hours())
		}
	}
}

func TestPromptMentionsDate(t *testing.T) {
	in := testInputs(t)
	p := Assemble(in, FullDay(1))
	if !strings.Contains(p.User, in.Date.Format(time.DateOnly)) {
		t.Error("prompt missing the date")
	}
}
