package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"childsim/internal/model"
)

func TestWriteDayFileLayout(t *testing.T) {
	dir := t.TempDir()
	day := &model.DayRecord{
		ID:               "test_2021-07-03",
		Date:             "2021-07-03",
		GenerationMethod: model.MethodChunked,
	}

	path, err := writeDayFile(dir, day, false)
	if err != nil {
		t.Fatalf("writeDayFile: %v", err)
	}

	want := filepath.Join(dir, "year_2021", "month_07", "day_2021-07-03_chunked.json")
	if path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("stat: %v", err)
	}

	got, err := readDayFile(path)
	if err != nil {
		t.Fatalf("readDayFile: %v", err)
	}
	if got.ID != day.ID || got.Date != day.Date {
		t.Errorf("roundtrip = %+v", got)
	}
}

func TestWritePartialDayFile(t *testing.T) {
	dir := t.TempDir()
	day := &model.DayRecord{
		Date:             "2021-07-03",
		GenerationMethod: model.MethodChunked,
	}

	path, err := writeDayFile(dir, day, true)
	if err != nil {
		t.Fatalf("writeDayFile: %v", err)
	}
	if filepath.Base(path) != "day_2021-07-03_chunked_partial.json" {
		t.Errorf("partial name = %s", filepath.Base(path))
	}
}

func TestManifestRoundtrip(t *testing.T) {
	dir := t.TempDir()

	recs := []ManifestRecord{
		{Date: "2021-07-03", Path: "a.json", Method: "chunked", Tier: "2.2", WrittenAt: time.Now().UTC()},
		{Date: "2021-07-04", Path: "b.json", Method: "single", Tier: "2.2", Violations: 2},
	}
	for _, rec := range recs {
		if err := appendManifest(dir, rec); err != nil {
			t.Fatalf("appendManifest: %v", err)
		}
	}

	got, err := readManifest(dir)
	if err != nil {
		t.Fatalf("readManifest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("records = %d, want 2", len(got))
	}
	if got[0].Date != "2021-07-03" || got[1].Violations != 2 {
		t.Errorf("roundtrip = %+v", got)
	}
}
