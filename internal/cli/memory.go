package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect the continuity store",
	}

	show := &cobra.Command{
		Use:   "show <date>",
		Short: "Show the summary in effect before a date",
		Args:  cobra.ExactArgs(1),
		Run:   runMemoryShow,
	}

	history := &cobra.Command{
		Use:   "history",
		Short: "List recent summary snapshots",
		Run:   runMemoryHistory,
	}
	history.Flags().IntP("limit", "n", 10, "Number of snapshots")

	cmd.AddCommand(show, history)
	RootCmd.AddCommand(cmd)
}

func runMemoryShow(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	s := openStore(cfg)
	defer s.Close()

	summary, err := s.SummaryAsOf(cmd.Context(), args[0])
	if err != nil {
		exitErr("memory show", err)
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
}

func runMemoryHistory(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	s := openStore(cfg)
	defer s.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	snaps, err := s.History(cmd.Context(), limit)
	if err != nil {
		exitErr("memory history", err)
	}

	for _, snap := range snaps {
		line, _ := json.Marshal(snap.Summary)
		fmt.Printf("%s %s\n", snap.AsOf, line)
	}
}
