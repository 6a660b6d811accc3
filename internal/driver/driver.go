// Package driver orchestrates day generation against the llm service.
package driver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"childsim/internal/llm"
	"childsim/internal/model"
	"childsim/internal/prompt"
	"childsim/internal/retry"
	"childsim/internal/scenario"
	"childsim/internal/timeline"
	"childsim/internal/vocab"
)

// Unit lifecycle states.
const (
	StatePending         = "PENDING"
	StateRequested       = "REQUESTED"
	StateAccepted        = "ACCEPTED"
	StateFailedTransient = "FAILED_TRANSIENT"
	StateFailedPermanent = "FAILED_PERMANENT"
)

// Unit tracks one generation window through its lifecycle.
type Unit struct {
	Window   prompt.Window
	State    string
	Attempts []retry.Attempt
	Err      error
}

// PermanentError reports a window that exhausted its retry budget or
// hit a non-retryable failure.
type PermanentError struct {
	Window   prompt.Window
	Attempts int
	Err      error
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("driver: %s failed permanently after %d attempt(s): %v", e.Window, e.Attempts, e.Err)
}

func (e *PermanentError) Unwrap() error { return e.Err }

// MalformedError marks a response that arrived but could not be used:
// unparseable JSON or structurally wrong coverage. Malformed responses
// are retried like transient service failures.
type MalformedError struct {
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("driver: malformed response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("driver: malformed response: %s", e.Reason)
}

func (e *MalformedError) Unwrap() error { return e.Err }

var (
	// ErrIncompleteCoverage means the assembled day is missing hours.
	ErrIncompleteCoverage = errors.New("driver: incomplete hour coverage")
	// ErrOverlappingCoverage means two chunks produced the same hour.
	ErrOverlappingCoverage = errors.New("driver: overlapping hour coverage")
)

// Request describes one day to generate.
type Request struct {
	Scenario    *scenario.Scenario
	Stage       *timeline.Stage
	Band        vocab.Band
	Summary     model.MemorySummary
	Date        time.Time
	Method      string // model.MethodSingle or model.MethodChunked
	ChunkHours  int    // chunked only; 12 gives the standard two halves
	MinuteStep  int
	Concurrency int // max in-flight windows for chunked generation
	TwoPass     bool
	Temperature float64 // recorded in provenance
}

// Result is the outcome of generating one day.
type Result struct {
	Day      *model.DayRecord
	Units    []Unit
	Complete bool
}

// Driver turns requests into day records.
type Driver struct {
	client llm.Client
	policy retry.Policy
	log    *zap.Logger
}

// New creates a driver using the given client and retry policy.
func New(client llm.Client, policy retry.Policy, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{client: client, policy: policy, log: log}
}

// GenerateDay produces the day record for req. For chunked requests a
// permanently failed window does not abort the others: the result
// carries every accepted chunk and Complete reports whether the whole
// day was covered.
func (d *Driver) GenerateDay(ctx context.Context, req Request) (*Result, error) {
	if req.MinuteStep <= 0 {
		req.MinuteStep = 1
	}
	switch req.Method {
	case model.MethodSingle, "":
		return d.generateSingle(ctx, req)
	case model.MethodChunked:
		return d.generateChunked(ctx, req)
	default:
		return nil, fmt.Errorf("driver: unknown method %q", req.Method)
	}
}

// RegenerateWindows re-requests the given windows and splices the new
// content into day, replacing the hours each window covers. It is used
// after validation finds violations localized to specific windows.
func (d *Driver) RegenerateWindows(ctx context.Context, req Request, day *model.DayRecord, windows []prompt.Window) (*Result, error) {
	units := make([]Unit, len(windows))
	chunks := make([]*chunk, len(windows))

	for i, w := range windows {
		ck, u := d.generateWindow(ctx, req, w)
		units[i] = u
		if u.State != StateAccepted {
			return &Result{Day: day, Units: units, Complete: false}, u.Err
		}
		chunks[i] = ck
	}

	for _, ck := range chunks {
		spliceChunk(day, ck)
	}
	sortHours(day)
	day.Provenance.GeneratedAt = time.Now().UTC()
	return &Result{Day: day, Units: units, Complete: true}, nil
}

// generateWindow runs the request/parse loop for one window under the
// retry policy and returns the parsed chunk on success.
func (d *Driver) generateWindow(ctx context.Context, req Request, w prompt.Window) (*chunk, Unit) {
	unit := Unit{Window: w, State: StateRequested}
	log := d.log.With(zap.String("date", req.Date.Format(model.DateLayout)), zap.Stringer("window", w))

	retryable := func(err error) bool {
		var mal *MalformedError
		return llm.IsTransient(err) || errors.As(err, &mal)
	}

	ck, attempts, err := retry.Do(ctx, d.policy, retryable, func(ctx context.Context) (*chunk, error) {
		raw, err := d.request(ctx, req, w)
		if err != nil {
			log.Warn("request failed", zap.Error(err))
			return nil, err
		}
		ck, err := parseChunk(raw, w)
		if err != nil {
			log.Warn("response rejected", zap.Error(err))
			return nil, err
		}
		return ck, nil
	})
	unit.Attempts = attempts

	if err != nil {
		unit.State = StateFailedPermanent
		unit.Err = &PermanentError{Window: w, Attempts: len(attempts), Err: err}
		log.Error("window failed permanently", zap.Int("attempts", len(attempts)), zap.Error(err))
		return nil, unit
	}

	unit.State = StateAccepted
	log.Info("window accepted", zap.Int("attempts", len(attempts)))
	return ck, unit
}

// request performs one generation pass (or two when TwoPass is set).
func (d *Driver) request(ctx context.Context, req Request, w prompt.Window) (string, error) {
	in := prompt.Inputs{
		Scenario: req.Scenario,
		Stage:    req.Stage,
		Band:     req.Band,
		Summary:  req.Summary,
		Date:     req.Date,
	}
	if !req.TwoPass {
		return d.client.Generate(ctx, prompt.Assemble(in, w))
	}

	external, err := d.client.Generate(ctx, prompt.AssembleExternal(in, w))
	if err != nil {
		return "", err
	}
	externalJSON, err := extractExternal(external, w)
	if err != nil {
		return "", err
	}
	internal, err := d.client.Generate(ctx, prompt.AssembleInternal(in, w, externalJSON))
	if err != nil {
		return "", err
	}
	return combinePasses(externalJSON, internal)
}

func (d *Driver) buildDay(req Request, chunks []*chunk) *model.DayRecord {
	date := req.Date.Format(model.DateLayout)
	day := &model.DayRecord{
		ID:               fmt.Sprintf("%s_%s", req.Scenario.ID, date),
		Date:             date,
		GenerationMethod: req.Method,
		AgeWeeks:         req.Scenario.AgeWeeksOn(req.Date),
		MinuteStep:       req.MinuteStep,
		Provenance: model.Provenance{
			Model:         d.client.Model(),
			PromptVersion: prompt.Version,
			Temperature:   req.Temperature,
			Chunks:        len(chunks),
			GeneratedAt:   time.Now().UTC(),
		},
	}
	if day.GenerationMethod == "" {
		day.GenerationMethod = model.MethodSingle
	}
	for _, ck := range chunks {
		day.ExternalReality = append(day.ExternalReality, ck.External...)
		day.InternalMonologue = append(day.InternalMonologue, ck.Internal...)
	}
	sortHours(day)
	return day
}

func sortHours(day *model.DayRecord) {
	sort.Slice(day.ExternalReality, func(i, j int) bool {
		return day.ExternalReality[i].Hour < day.ExternalReality[j].Hour
	})
	sort.Slice(day.InternalMonologue, func(i, j int) bool {
		return day.InternalMonologue[i].Hour < day.InternalMonologue[j].Hour
	})
}

// spliceChunk replaces the hours a chunk covers inside an existing day.
func spliceChunk(day *model.DayRecord, ck *chunk) {
	keepE := day.ExternalReality[:0]
	for _, h := range day.ExternalReality {
		if !ck.Window.Contains(h.Hour) {
			keepE = append(keepE, h)
		}
	}
	day.ExternalReality = append(keepE, ck.External...)

	keepI := day.InternalMonologue[:0]
	for _, h := range day.InternalMonologue {
		if !ck.Window.Contains(h.Hour) {
			keepI = append(keepI, h)
		}
	}
	day.InternalMonologue = append(keepI, ck.Internal...)
}
