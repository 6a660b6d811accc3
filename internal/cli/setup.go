package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"childsim/internal/config"
	"childsim/internal/scenario"
	"childsim/internal/timeline"
)

func init() {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Write starter scenario, timeline, and config files",
		Long: "Write scenario.yaml, timeline.yaml, and childsim.yaml into the current\n" +
			"directory as editable starting points. Existing files are left alone\n" +
			"unless --force is set.",
		Run: runSetup,
	}

	cmd.Flags().String("id", "default", "Scenario id")
	cmd.Flags().Bool("force", false, "Overwrite existing files")

	RootCmd.AddCommand(cmd)
}

func runSetup(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")
	force, _ := cmd.Flags().GetBool("force")

	sc := scenario.Default(id)

	writeIfAbsent := func(path string, write func(string) error) {
		if !force {
			if _, err := os.Stat(path); err == nil {
				fmt.Printf("skip %s (exists, use --force to overwrite)\n", path)
				return
			}
		}
		if err := write(path); err != nil {
			exitErr("setup", err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	writeIfAbsent("scenario.yaml", sc.Save)
	writeIfAbsent("timeline.yaml", timeline.Default(sc.Child.Birthdate).Save)
	writeIfAbsent("childsim.yaml", func(path string) error {
		data, err := yaml.Marshal(config.Default())
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0o644)
	})
}
