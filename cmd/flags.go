package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/satprep/satprep/internal/questions"
	"github.com/satprep/satprep/internal/session"
)

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Manage flagged questions",
}

// stderrLogger reports storage problems of the non-TUI commands.
var stderrLogger = log.New(os.Stderr, "warning: ", 0)

var flagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List flagged questions",
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
		bank, err := openBank(cfg)
		if err != nil {
			return err
		}

		flags := session.Open(cmd.Context(), session.NewAdapter(st.KV(), stderrLogger)).Flags()
		if flags.Len() == 0 {
			fmt.Println("No questions flagged.")
			return nil
		}

		for _, id := range flags.IDs() {
			q, subject, ok := bank.Find(id)
			if !ok {
				fmt.Printf("%-24s  (not in the current bank)\n", id)
				continue
			}
			fmt.Printf("%-24s  %-8s  %-10s  %s\n", id, subject, q.Difficulty, q.Domain)
		}
		fmt.Printf("\n%d flagged\n", flags.Len())
		return nil
	},
}

var flagsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every flag",
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

		fs := session.Open(cmd.Context(), session.NewAdapter(st.KV(), stderrLogger))
		return clearFlags(cmd.Context(), fs, cmd.OutOrStdout())
	},
}

// clearFlags empties fs and reports how many flags were removed once the
// write has succeeded.
func clearFlags(ctx context.Context, fs *session.Store, out io.Writer) error {
	n := fs.Flags().Len()
	fs.Clear()
	if err := fs.Sync(ctx); err != nil {
		return fmt.Errorf("clear flags: %w", err)
	}
	fmt.Fprintf(out, "Cleared %d flags.\n", n)
	return nil
}

var flagsExportCmd = &cobra.Command{
	Use:   "export <out.xlsx>",
	Short: "Write the flagged questions to a review workbook",
	Args:  cobra.ExactArgs(1),
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
		bank, err := openBank(cfg)
		if err != nil {
			return err
		}

		flags := session.Open(cmd.Context(), session.NewAdapter(st.KV(), stderrLogger)).Flags()
		review := flaggedBank(bank, flags)

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("create %s: %w", args[0], err)
		}
		if err := questions.WriteWorkbook(f, review); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", args[0], err)
		}

		fmt.Printf("Wrote %d math and %d english questions to %s\n",
			review.Count(questions.SubjectMath), review.Count(questions.SubjectEnglish), args[0])
		return nil
	},
}

// flaggedBank keeps the flagged questions of bank in bank order. Flags that
// do not resolve are left out.
func flaggedBank(bank *questions.Bank, flags *session.FlagSet) *questions.Bank {
	out := &questions.Bank{}
	for _, q := range bank.Math {
		if flags.Has(q.ID) {
			out.Math = append(out.Math, q)
		}
	}
	for _, q := range bank.English {
		if flags.Has(q.ID) {
			out.English = append(out.English, q)
		}
	}
	return out
}

func init() {
	flagsCmd.AddCommand(flagsListCmd)
	flagsCmd.AddCommand(flagsClearCmd)
	flagsCmd.AddCommand(flagsExportCmd)
}
