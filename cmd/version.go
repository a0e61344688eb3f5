package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/satprep/satprep/internal/questions"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the program version and the size of the built-in question bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := version
		if info, ok := debug.ReadBuildInfo(); ok && v == "(devel)" && info.Main.Version != "" {
			v = info.Main.Version
		}
		fmt.Fprintln(cmd.OutOrStdout(), "satprep", v)

		bank, err := questions.DefaultBank()
		if err != nil {
			return err
		}
		for _, s := range questions.AllSubjects() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %d questions\n", s.DisplayName(), bank.Count(s))
		}
		return nil
	},
}
