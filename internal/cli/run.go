package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"childsim/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate a range of days",
		Long: "Generate every day from --from through --to in order. Each accepted day\n" +
			"feeds the memory store before the next day starts, so continuity carries\n" +
			"forward across the range.",
		Run: runRange,
	}

	addGenerationFlags(cmd)
	cmd.Flags().String("from", "", "First date (YYYY-MM-DD, required)")
	cmd.Flags().String("to", "", "Last date inclusive (YYYY-MM-DD, required)")
	cmd.Flags().Bool("keep-going", false, "Continue with the next day after a failed one")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	RootCmd.AddCommand(cmd)
}

func runRange(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	log := newLogger(cfg)
	defer log.Sync()

	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	keepGoing, _ := cmd.Flags().GetBool("keep-going")

	from, err := time.Parse(model.DateLayout, fromStr)
	if err != nil {
		exitErr("parse --from", err)
	}
	to, err := time.Parse(model.DateLayout, toStr)
	if err != nil {
		exitErr("parse --to", err)
	}
	if to.Before(from) {
		exitErr("run", fmt.Errorf("--to %s is before --from %s", toStr, fromStr))
	}

	rc := newRunContext(cmd, cfg, log)
	defer rc.store.Close()

	var failed int
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		if err := rc.generateOne(cmd.Context(), date); err != nil {
			failed++
			log.Error("day failed",
				zap.String("date", date.Format(model.DateLayout)),
				zap.Error(err))
			if !keepGoing {
				exitErr("run", err)
			}
		}
	}

	if failed > 0 {
		exitErr("run", fmt.Errorf("%d day(s) failed", failed))
	}
	log.Info("range complete",
		zap.String("from", fromStr),
		zap.String("to", toStr))
}
