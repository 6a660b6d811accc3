package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"childsim/internal/model"
)

// ManifestRecord is one line of the run manifest.
type ManifestRecord struct {
	Date       string    `json:"date"`
	Path       string    `json:"path"`
	Method     string    `json:"method"`
	AgeWeeks   int       `json:"age_weeks"`
	Tier       string    `json:"tier"`
	Violations int       `json:"violations"`
	Partial    bool      `json:"partial"`
	WrittenAt  time.Time `json:"written_at"`
}

// dayFilePath returns the layout path for a day:
// <out>/year_YYYY/month_MM/day_<date>_<method>.json
func dayFilePath(outDir string, day *model.DayRecord) string {
	t, _ := time.Parse(model.DateLayout, day.Date)
	name := fmt.Sprintf("day_%s_%s.json", day.Date, day.GenerationMethod)
	return filepath.Join(outDir,
		fmt.Sprintf("year_%04d", t.Year()),
		fmt.Sprintf("month_%02d", int(t.Month())),
		name)
}

// writeDayFile persists a day record under the dated directory layout.
func writeDayFile(outDir string, day *model.DayRecord, partial bool) (string, error) {
	path := dayFilePath(outDir, day)
	if partial {
		path = path[:len(path)-len(".json")] + "_partial.json"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(day, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal day: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write day file: %w", err)
	}
	return path, nil
}

// appendManifest appends one record to <out>/manifest.jsonl.
func appendManifest(outDir string, rec ManifestRecord) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(outDir, "manifest.jsonl"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal manifest record: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append manifest: %w", err)
	}
	return nil
}

// readManifest loads every record from <out>/manifest.jsonl.
func readManifest(outDir string) ([]ManifestRecord, error) {
	f, err := os.Open(filepath.Join(outDir, "manifest.jsonl"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []ManifestRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var rec ManifestRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("manifest line: %w", err)
		}
		out = append(out, rec)
	}
	return out, sc.Err()
}

// readDayFile loads a day record from disk.
func readDayFile(path string) (*model.DayRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read day file: %w", err)
	}
	var day model.DayRecord
	if err := json.Unmarshal(data, &day); err != nil {
		return nil, fmt.Errorf("parse day file: %w", err)
	}
	return &day, nil
}
