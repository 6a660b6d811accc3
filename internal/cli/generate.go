package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"childsim/internal/config"
	"childsim/internal/driver"
	"childsim/internal/llm"
	"childsim/internal/memory"
	"childsim/internal/model"
	"childsim/internal/prompt"
	"childsim/internal/retry"
	"childsim/internal/scenario"
	"childsim/internal/timeline"
	"childsim/internal/validator"
	"childsim/internal/vocab"
)

func init() {
	cmd := &cobra.Command{
		Use:   "generate <date>",
		Short: "Generate one day",
		Long:  "Generate the paired external/internal record for a single date (YYYY-MM-DD).",
		Args:  cobra.ExactArgs(1),
		Run:   runGenerate,
	}

	addGenerationFlags(cmd)

	RootCmd.AddCommand(cmd)
}

func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("scenario", "s", "scenario.yaml", "Scenario profile path")
	cmd.Flags().StringP("timeline", "t", "", "Timeline path (default: built-in stages from the scenario birthdate)")
	cmd.Flags().StringP("out", "o", "", "Output directory (default: from config)")
	cmd.Flags().String("method", "", "Generation method: single or chunked (default: from config)")
	cmd.Flags().Int("chunk-hours", 0, "Hours per chunk for chunked generation (default: from config)")
	cmd.Flags().Int("tolerance", -1, "Max violations an accepted day may carry (default: from config)")
}

func runGenerate(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	log := newLogger(cfg)
	defer log.Sync()

	rc := newRunContext(cmd, cfg, log)
	defer rc.store.Close()

	date, err := time.Parse(model.DateLayout, args[0])
	if err != nil {
		exitErr("parse date", err)
	}

	if err := rc.generateOne(cmd.Context(), date); err != nil {
		exitErr("generate", err)
	}
}

// runContext bundles everything a generation run needs.
type runContext struct {
	cfg      config.Config
	log      *zap.Logger
	scenario *scenario.Scenario
	timeline *timeline.Timeline
	registry *vocab.Registry
	store    *memory.Store
	driver   *driver.Driver
	outDir   string
	method   string
}

func newRunContext(cmd *cobra.Command, cfg config.Config, log *zap.Logger) *runContext {
	scenarioPath, _ := cmd.Flags().GetString("scenario")
	timelinePath, _ := cmd.Flags().GetString("timeline")
	outDir, _ := cmd.Flags().GetString("out")
	method, _ := cmd.Flags().GetString("method")

	sc, err := scenario.Load(scenarioPath)
	if err != nil {
		exitErr("load scenario", err)
	}

	var tl *timeline.Timeline
	if timelinePath != "" {
		tl, err = timeline.Load(timelinePath)
		if err != nil {
			exitErr("load timeline", err)
		}
	} else {
		tl = timeline.Default(sc.Child.Birthdate)
	}

	timeout, err := cfg.Service.TimeoutDuration()
	if err != nil {
		exitErr("parse config", err)
	}
	interval, err := cfg.Service.IntervalDuration()
	if err != nil {
		exitErr("parse config", err)
	}
	client, err := llm.New(cfg.Service.Provider, llm.Config{
		BaseURL:            cfg.Service.BaseURL,
		APIKey:             cfg.Service.APIKey,
		Model:              cfg.Service.Model,
		Timeout:            timeout,
		Temperature:        cfg.Service.Temperature,
		MinRequestInterval: interval,
	})
	if err != nil {
		exitErr("init client", err)
	}

	policy := retry.DefaultPolicy()
	if cfg.Generation.MaxAttempts > 0 {
		policy.MaxAttempts = cfg.Generation.MaxAttempts
	}

	if outDir == "" {
		outDir = cfg.OutputDir
	}
	if method == "" {
		method = cfg.Generation.Method
	}
	if chunkHours, _ := cmd.Flags().GetInt("chunk-hours"); chunkHours > 0 {
		cfg.Generation.ChunkHours = chunkHours
	}
	if tolerance, _ := cmd.Flags().GetInt("tolerance"); tolerance >= 0 {
		cfg.Generation.ViolationTolerance = tolerance
	}

	return &runContext{
		cfg:      cfg,
		log:      log,
		scenario: sc,
		timeline: tl,
		registry: vocab.DefaultRegistry(),
		store:    openStore(cfg),
		driver:   driver.New(client, policy, log),
		outDir:   outDir,
		method:   method,
	}
}

// generateOne runs the full pipeline for one date: resolve stage and
// band, fetch continuity, generate, validate, regenerate offending
// windows if needed, persist, and fold the day into memory.
func (rc *runContext) generateOne(ctx context.Context, date time.Time) error {
	dateStr := date.Format(model.DateLayout)
	log := rc.log.With(zap.String("date", dateStr))

	stage, err := rc.timeline.StageFor(date)
	if err != nil {
		return err
	}
	band, err := rc.registry.BandFor(stage.VocabularyTier)
	if err != nil {
		return err
	}
	summary, err := rc.store.SummaryAsOf(ctx, dateStr)
	if err != nil {
		return err
	}

	req := driver.Request{
		Scenario:    rc.scenario,
		Stage:       stage,
		Band:        band,
		Summary:     summary,
		Date:        date,
		Method:      rc.method,
		ChunkHours:  rc.cfg.Generation.ChunkHours,
		MinuteStep:  rc.cfg.Generation.MinuteStep,
		Concurrency: rc.cfg.Generation.Concurrency,
		TwoPass:     rc.cfg.Generation.TwoPass,
		Temperature: rc.cfg.Service.Temperature,
	}

	log.Info("generating day",
		zap.String("method", rc.method),
		zap.String("tier", band.Tier),
		zap.String("stage", stage.ID))

	res, err := rc.driver.GenerateDay(ctx, req)
	if err != nil {
		if res != nil && res.Day != nil {
			// Keep what we have so failed windows can be retried later.
			path, werr := writeDayFile(rc.outDir, res.Day, true)
			if werr != nil {
				log.Error("write partial day failed", zap.Error(werr))
			} else {
				log.Warn("day incomplete, partial record written", zap.String("path", path))
			}
		}
		return err
	}

	report := validator.Validate(res.Day, band)
	if !report.Passed && rc.method == model.MethodChunked {
		res, report, err = rc.regenerate(ctx, req, res, report, band)
		if err != nil {
			return err
		}
	}

	if len(report.Violations) > rc.cfg.Generation.ViolationTolerance {
		for _, v := range report.Violations {
			log.Warn("violation", zap.String("code", v.Code), zap.String("detail", v.Message))
		}
		return fmt.Errorf("day %s rejected: %d violation(s), tolerance %d",
			dateStr, len(report.Violations), rc.cfg.Generation.ViolationTolerance)
	}

	path, err := writeDayFile(rc.outDir, res.Day, false)
	if err != nil {
		return err
	}
	if err := appendManifest(rc.outDir, ManifestRecord{
		Date:       res.Day.Date,
		Path:       path,
		Method:     res.Day.GenerationMethod,
		AgeWeeks:   res.Day.AgeWeeks,
		Tier:       band.Tier,
		Violations: len(report.Violations),
		Partial:    false,
		WrittenAt:  time.Now().UTC(),
	}); err != nil {
		return err
	}

	if _, err := rc.store.RecordAccepted(ctx, res.Day); err != nil {
		return err
	}

	log.Info("day accepted",
		zap.String("path", path),
		zap.Int("violations", len(report.Violations)))
	return nil
}

// regenerate re-requests the chunks whose hours carry violations, then
// revalidates. One regeneration round only; persistent defects surface
// as a rejection.
func (rc *runContext) regenerate(ctx context.Context, req driver.Request, res *driver.Result, report validator.Report, band vocab.Band) (*driver.Result, validator.Report, error) {
	hours := validator.WindowsWithViolations(report)
	windows := windowsCovering(hours, req.ChunkHours, req.MinuteStep)
	if len(windows) == 0 {
		return res, report, nil
	}

	rc.log.Info("regenerating windows with violations", zap.Int("windows", len(windows)))
	res2, err := rc.driver.RegenerateWindows(ctx, req, res.Day, windows)
	if err != nil {
		return res, report, err
	}
	return res2, validator.Validate(res2.Day, band), nil
}

// windowsCovering returns the distinct chunk windows containing the
// given hours.
func windowsCovering(hours []int, chunkHours, minuteStep int) []prompt.Window {
	all := prompt.Split(chunkHours, minuteStep)
	var out []prompt.Window
	for _, w := range all {
		for _, h := range hours {
			if w.Contains(h) {
				out = append(out, w)
				break
			}
		}
	}
	return out
}
