package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"childsim/internal/model"
	"childsim/internal/scenario"
	"childsim/internal/timeline"
	"childsim/internal/validator"
	"childsim/internal/vocab"
)

func init() {
	cmd := &cobra.Command{
		Use:   "validate <dayfile>",
		Short: "Validate a day file",
		Long: "Check a stored day file for structural and vocabulary defects. The tier is\n" +
			"taken from --tier, or resolved from the scenario and timeline by the file's date.",
		Args: cobra.ExactArgs(1),
		Run:  runValidate,
	}

	cmd.Flags().String("tier", "", "Vocabulary tier to validate against (default: resolve from scenario)")
	cmd.Flags().StringP("scenario", "s", "scenario.yaml", "Scenario profile path")
	cmd.Flags().StringP("timeline", "t", "", "Timeline path (default: built-in stages)")

	RootCmd.AddCommand(cmd)
}

func runValidate(cmd *cobra.Command, args []string) {
	day, err := readDayFile(args[0])
	if err != nil {
		exitErr("load day", err)
	}

	tier, _ := cmd.Flags().GetString("tier")
	if tier == "" {
		tier = resolveTier(cmd, day.Date)
	}

	band, err := vocab.DefaultRegistry().BandFor(tier)
	if err != nil {
		exitErr("resolve band", err)
	}

	report := validator.Validate(day, band)

	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))

	if !report.Passed {
		os.Exit(1)
	}
}

func resolveTier(cmd *cobra.Command, dateStr string) string {
	scenarioPath, _ := cmd.Flags().GetString("scenario")
	timelinePath, _ := cmd.Flags().GetString("timeline")

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

	date, err := time.Parse(model.DateLayout, dateStr)
	if err != nil {
		exitErr("parse day date", err)
	}
	tier, err := tl.TierFor(date)
	if err != nil {
		exitErr("resolve tier", err)
	}
	return tier
}
