// Package memory persists the rolling continuity state between days.
// Each accepted day appends a summary snapshot keyed by its date, so
// any day's prompt context can be rebuilt from the latest snapshot
// strictly before that day.
package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"childsim/internal/model"
)

// DefaultEventCap bounds the salient-event list carried in a snapshot.
const DefaultEventCap = 20

// Store keeps memory summary snapshots in SQLite.
type Store struct {
	db       *sql.DB
	entropy  *rand.Rand
	eventCap int
}

// Snapshot is one stored summary with the date it was taken for.
type Snapshot struct {
	AsOf    string
	Summary model.MemorySummary
}

// Option configures a Store.
type Option func(*Store)

// WithEventCap overrides the salient-event cap.
func WithEventCap(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.eventCap = n
		}
	}
}

// NewStore opens or creates a snapshot database at the given path.
func NewStore(dbPath string, opts ...Option) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{
		db:       db,
		entropy:  rand.New(rand.NewSource(time.Now().UnixNano())),
		eventCap: DefaultEventCap,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS summaries (
		id             TEXT PRIMARY KEY,
		as_of          TEXT NOT NULL UNIQUE,
		covering_start TEXT NOT NULL,
		covering_end   TEXT NOT NULL,
		salient_events TEXT NOT NULL,
		emergent_traits TEXT NOT NULL,
		created_at     TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_summaries_as_of ON summaries(as_of DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SummaryAsOf returns the summary in effect before generating the given
// date: the latest snapshot with as_of strictly earlier. A zero summary
// and nil error mean no history exists yet.
func (s *Store) SummaryAsOf(ctx context.Context, date string) (model.MemorySummary, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT as_of, covering_start, covering_end, salient_events, emergent_traits
		 FROM summaries WHERE as_of < ? ORDER BY as_of DESC LIMIT 1`, date)

	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return model.MemorySummary{}, nil
	}
	if err != nil {
		return model.MemorySummary{}, fmt.Errorf("summary as of %s: %w", date, err)
	}
	return snap.Summary, nil
}

// RecordAccepted folds an accepted day into the continuity state and
// stores the result as the snapshot for that day's date. Re-recording
// the same date replaces its snapshot.
func (s *Store) RecordAccepted(ctx context.Context, day *model.DayRecord) (model.MemorySummary, error) {
	prev, err := s.SummaryAsOf(ctx, day.Date)
	if err != nil {
		return model.MemorySummary{}, err
	}

	next := fold(prev, day, s.eventCap)

	eventsJSON, err := json.Marshal(next.SalientEvents)
	if err != nil {
		return model.MemorySummary{}, fmt.Errorf("marshal events: %w", err)
	}
	traitsJSON, err := json.Marshal(next.EmergentTraits)
	if err != nil {
		return model.MemorySummary{}, fmt.Errorf("marshal traits: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO summaries (id, as_of, covering_start, covering_end, salient_events, emergent_traits, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(as_of) DO UPDATE SET
		   covering_start = excluded.covering_start,
		   covering_end = excluded.covering_end,
		   salient_events = excluded.salient_events,
		   emergent_traits = excluded.emergent_traits,
		   created_at = excluded.created_at`,
		s.newID(), day.Date, next.CoveringPeriod.Start, next.CoveringPeriod.End,
		string(eventsJSON), string(traitsJSON), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return model.MemorySummary{}, fmt.Errorf("insert snapshot: %w", err)
	}

	return next, nil
}

// History returns the most recent snapshots, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT as_of, covering_start, covering_end, salient_events, emergent_traits
		 FROM summaries ORDER BY as_of DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSnapshot(row scanner) (Snapshot, error) {
	var snap Snapshot
	var eventsJSON, traitsJSON string

	err := row.Scan(&snap.AsOf, &snap.Summary.CoveringPeriod.Start,
		&snap.Summary.CoveringPeriod.End, &eventsJSON, &traitsJSON)
	if err != nil {
		return snap, err
	}

	if err := json.Unmarshal([]byte(eventsJSON), &snap.Summary.SalientEvents); err != nil {
		return snap, fmt.Errorf("decode events: %w", err)
	}
	if err := json.Unmarshal([]byte(traitsJSON), &snap.Summary.EmergentTraits); err != nil {
		return snap, fmt.Errorf("decode traits: %w", err)
	}
	snap.Summary.LastUpdated = snap.AsOf
	return snap, nil
}

// fold merges one day into the prior summary. Events append oldest-out;
// traits take the later value on conflict.
func fold(prev model.MemorySummary, day *model.DayRecord, limit int) model.MemorySummary {
	next := model.MemorySummary{
		CoveringPeriod: prev.CoveringPeriod,
		LastUpdated:    day.Date,
		EmergentTraits: map[string]string{},
	}
	if next.CoveringPeriod.Start == "" || day.Date < next.CoveringPeriod.Start {
		next.CoveringPeriod.Start = day.Date
	}
	if day.Date > next.CoveringPeriod.End {
		next.CoveringPeriod.End = day.Date
	}

	for k, v := range prev.EmergentTraits {
		next.EmergentTraits[k] = v
	}
	for k, v := range deriveTraits(day) {
		next.EmergentTraits[k] = v
	}

	events := append([]string{}, prev.SalientEvents...)
	events = append(events, deriveEvents(day)...)
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	next.SalientEvents = events
	return next
}

// deriveEvents extracts the day's notable moments: each hour's routine
// activity (deduplicated across the day) and any explicit firsts.
func deriveEvents(day *model.DayRecord) []string {
	var events []string
	seen := map[string]bool{}
	for _, h := range day.ExternalReality {
		if len(h.Entries) == 0 {
			continue
		}
		e := h.Entries[0]
		if e.RoutineActivity != "" && !seen[e.RoutineActivity] {
			seen[e.RoutineActivity] = true
			events = append(events, fmt.Sprintf("%s: %s", day.Date, e.RoutineActivity))
		}
		if e.ExternalEvents != "" && strings.Contains(strings.ToLower(e.ExternalEvents), "first") {
			events = append(events, fmt.Sprintf("%s: %s", day.Date, e.ExternalEvents))
		}
	}
	for _, h := range day.InternalMonologue {
		for _, e := range h.Entries {
			mb := e.Components.MotorBehavior
			if mb != "" && strings.Contains(strings.ToLower(mb), "first") && !seen[mb] {
				seen[mb] = true
				events = append(events, fmt.Sprintf("%s: %s", day.Date, mb))
			}
		}
	}
	return events
}

// deriveTraits summarizes the day's label distribution into traits.
func deriveTraits(day *model.DayRecord) map[string]string {
	emotions := map[string]int{}
	arousals := map[string]int{}
	contexts := map[string]int{}
	for _, h := range day.InternalMonologue {
		for _, e := range h.Entries {
			emotions[e.Labels.DominantEmotion]++
			arousals[e.Labels.ArousalLevel]++
			contexts[e.Labels.SocialContext]++
		}
	}
	traits := map[string]string{}
	if top := mode(emotions); top != "" {
		traits["dominant_emotion"] = top
	}
	if top := mode(arousals); top != "" {
		traits["typical_arousal"] = top
	}
	if top := mode(contexts); top != "" {
		traits["social_pattern"] = top
	}
	return traits
}

// mode returns the most frequent key, ties broken alphabetically.
func mode(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	best, bestN := "", 0
	for _, k := range keys {
		if counts[k] > bestN {
			best, bestN = k, counts[k]
		}
	}
	return best
}
