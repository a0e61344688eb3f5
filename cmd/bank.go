package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satprep/satprep/internal/questions"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect the question bank",
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a question bank (.json or .xlsx); the active bank when no file is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			cfg.BankPath = args[0]
		}

		bank, err := openBank(cfg)
		if err != nil {
			return err
		}
		if err := questions.Validate(bank); err != nil {
			return err
		}

		name := cfg.BankPath
		if name == "" {
			name = "built-in bank"
		}
		fmt.Printf("%s: ok (%d math, %d english)\n", name,
			bank.Count(questions.SubjectMath), bank.Count(questions.SubjectEnglish))
		return nil
	},
}

var bankListCmd = &cobra.Command{
	Use:   "list [subject]",
	Short: "List questions (optionally for one subject: math or english)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		bank, err := openBank(cfg)
		if err != nil {
			return err
		}

		subjects := questions.AllSubjects()
		if len(args) == 1 {
			s, err := questions.ParseSubject(args[0])
			if err != nil {
				return err
			}
			subjects = []questions.Subject{s}
		}

		fmt.Printf("%-8s  %-5s  %-24s  %-36s  %s\n",
			"Subject", "#", "ID", "Domain", "Difficulty")
		fmt.Println(strings.Repeat("─", 90))

		total := 0
		for _, s := range subjects {
			qs, err := bank.Get(cmd.Context(), s)
			if err != nil {
				return err
			}
			for i, q := range qs {
				fmt.Printf("%-8s  %-5d  %-24s  %-36s  %s\n",
					s, i+1, truncate(q.ID, 24), truncate(q.Domain, 36), q.Difficulty)
			}
			total += len(qs)
		}

		fmt.Printf("\n%d questions\n", total)
		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankListCmd)
}
