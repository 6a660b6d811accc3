package timeline

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

var birth = time.Date(2020, 3, 14, 0, 0, 0, 0, time.UTC)

func TestDefaultCoversEveryDay(t *testing.T) {
	tl := Default(birth)

	end := birth.AddDate(5, 0, 0).AddDate(0, 0, -1)
	prevTier := ""
	tiers := 0
	for d := birth; !d.After(end); d = d.AddDate(0, 0, 1) {
		st, err := tl.StageFor(d)
		if err != nil {
			t.Fatalf("StageFor(%s): %v", d.Format("2006-01-02"), err)
		}
		if st.VocabularyTier != prevTier {
			prevTier = st.VocabularyTier
			tiers++
		}
	}
	if tiers != 14 {
		t.Errorf("walked %d tier changes, want 14", tiers)
	}
}

func TestStageForOutOfRange(t *testing.T) {
	tl := Default(birth)

	for _, d := range []time.Time{
		birth.AddDate(0, 0, -1),
		birth.AddDate(5, 0, 0),
	} {
		if _, err := tl.StageFor(d); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("StageFor(%s) = %v, want ErrOutOfRange", d.Format("2006-01-02"), err)
		}
	}
}

func TestStageBoundaries(t *testing.T) {
	tl := Default(birth)

	// Last day of the first stage and first day of the second.
	sixMonths := birth.AddDate(0, 6, 0)

	st, err := tl.StageFor(sixMonths.AddDate(0, 0, -1))
	if err != nil {
		t.Fatal(err)
	}
	if st.VocabularyTier != "1.1" {
		t.Errorf("day before six months: tier %s, want 1.1", st.VocabularyTier)
	}

	st, err = tl.StageFor(sixMonths)
	if err != nil {
		t.Fatal(err)
	}
	if st.VocabularyTier != "1.2" {
		t.Errorf("at six months: tier %s, want 1.2", st.VocabularyTier)
	}
}

func TestNewRejectsGap(t *testing.T) {
	stages := Default(birth).Stages
	stages[3].Start = stages[3].Start.AddDate(0, 0, 1)

	if _, err := New(birth, stages); !errors.Is(err, ErrMalformedTimeline) {
		t.Errorf("New with gap = %v, want ErrMalformedTimeline", err)
	}
}

func TestNewRejectsOverlap(t *testing.T) {
	stages := Default(birth).Stages
	stages[2].End = stages[2].End.AddDate(0, 0, 3)

	if _, err := New(birth, stages); !errors.Is(err, ErrMalformedTimeline) {
		t.Errorf("New with overlap = %v, want ErrMalformedTimeline", err)
	}
}

func TestNewRejectsWrongStart(t *testing.T) {
	stages := Default(birth).Stages
	if _, err := New(birth.AddDate(0, 0, 5), stages); !errors.Is(err, ErrMalformedTimeline) {
		t.Errorf("New with shifted birthdate = %v, want ErrMalformedTimeline", err)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	tl := Default(birth)
	path := filepath.Join(t.TempDir(), "timeline.yaml")

	if err := tl.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(got.Stages) != len(tl.Stages) {
		t.Fatalf("loaded %d stages, want %d", len(got.Stages), len(tl.Stages))
	}
	for i := range got.Stages {
		if got.Stages[i].VocabularyTier != tl.Stages[i].VocabularyTier {
			t.Errorf("stage %d tier %s, want %s", i, got.Stages[i].VocabularyTier, tl.Stages[i].VocabularyTier)
		}
	}
}

func TestTierFor(t *testing.T) {
	tl := Default(birth)

	tier, err := tl.TierFor(birth.AddDate(4, 11, 0))
	if err != nil {
		t.Fatal(err)
	}
	if tier != "5.3" {
		t.Errorf("tier at 59 months = %s, want 5.3", tier)
	}
}
