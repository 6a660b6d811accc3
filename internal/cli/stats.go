package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize a run from its manifest",
		Run:   runStats,
	}

	cmd.Flags().StringP("out", "o", "", "Output directory holding manifest.jsonl (default: from config)")

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)

	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	recs, err := readManifest(outDir)
	if err != nil {
		if os.IsNotExist(err) {
			exitErr("stats", fmt.Errorf("no manifest in %s", outDir))
		}
		exitErr("stats", err)
	}

	type tierStat struct {
		Days       int `json:"days"`
		Violations int `json:"violations"`
	}
	stats := struct {
		Days       int                  `json:"days"`
		Partial    int                  `json:"partial"`
		Violations int                  `json:"violations"`
		First      string               `json:"first_date,omitempty"`
		Last       string               `json:"last_date,omitempty"`
		ByMethod   map[string]int       `json:"by_method"`
		ByTier     map[string]*tierStat `json:"by_tier"`
	}{
		ByMethod: map[string]int{},
		ByTier:   map[string]*tierStat{},
	}

	for _, rec := range recs {
		stats.Days++
		if rec.Partial {
			stats.Partial++
		}
		stats.Violations += rec.Violations
		if stats.First == "" || rec.Date < stats.First {
			stats.First = rec.Date
		}
		if rec.Date > stats.Last {
			stats.Last = rec.Date
		}
		stats.ByMethod[rec.Method]++
		ts := stats.ByTier[rec.Tier]
		if ts == nil {
			ts = &tierStat{}
			stats.ByTier[rec.Tier] = ts
		}
		ts.Days++
		ts.Violations += rec.Violations
	}

	out, _ := json.MarshalIndent(stats, "", "  ")
	fmt.Println(string(out))
}
