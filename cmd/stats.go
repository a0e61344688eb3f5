package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show answer statistics per subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.EventRepo().SubjectStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("read answer log: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No answers recorded yet.")
			return nil
		}

		fmt.Printf("%-10s  %8s  %8s  %8s  %8s\n", "Subject", "Sessions", "Answered", "Correct", "Accuracy")
		fmt.Println(strings.Repeat("─", 52))
		for _, s := range stats {
			fmt.Printf("%-10s  %8d  %8d  %8d  %7.0f%%\n",
				s.Subject, s.Sessions, s.Answered, s.Correct, s.Accuracy()*100)
		}
		return nil
	},
}
