package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satprep/satprep/internal/navigator"
	"github.com/satprep/satprep/internal/questions"
	"github.com/satprep/satprep/internal/richtext"
	"github.com/satprep/satprep/internal/session"
)

var previewCmd = &cobra.Command{
	Use:   "preview <subject>",
	Short: "Answer a subject's questions in plain text (no database)",
	Long: `Walk through the questions of a subject on stdin/stdout.

This is a stateless tool: flags and answers are kept in memory only.
Useful for checking how a bank renders without starting the TUI.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("start", 1, "Question number to start at")
}

func runPreview(cmd *cobra.Command, args []string) error {
	subject, err := questions.ParseSubject(args[0])
	if err != nil {
		return err
	}
	start, _ := cmd.Flags().GetInt("start")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	bank, err := openBank(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	set, err := questions.NewLoader(bank).Load(ctx, subject)
	if err != nil {
		return err
	}

	flags := session.Open(ctx, session.NewAdapter(session.NewMemoryStorage(), stderrLogger))
	engine := navigator.New(flags)
	engine.Initialize(set)
	if start != 1 {
		if err := engine.JumpTo(fmt.Sprint(start)); err != nil {
			return fmt.Errorf("%s", engine.State().ErrorMessage)
		}
	}

	return drill(ctx, engine, cmd.InOrStdin(), cmd.OutOrStdout())
}

// drill prompts for an answer per question until input ends or the user
// quits with "q". Besides a-d it accepts "n", "p" and "f".
func drill(ctx context.Context, engine *navigator.Engine, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	printQuestion(engine, out)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		input := strings.ToLower(strings.TrimSpace(scanner.Text()))

		switch input {
		case "":
			continue
		case "q":
			return summarize(engine, out)
		case "n":
			_ = engine.Next()
			printQuestion(engine, out)
			continue
		case "p":
			_ = engine.Previous()
			printQuestion(engine, out)
			continue
		case "f":
			flagged, _ := engine.ToggleCurrentFlag(ctx)
			if flagged {
				fmt.Fprintln(out, "Flagged.")
			} else {
				fmt.Fprintln(out, "Unflagged.")
			}
			continue
		}

		label, ok := questions.ParseLabel(input)
		if !ok {
			fmt.Fprintln(out, "Answer with a-d, or n/p/f/q.")
			continue
		}
		if engine.State().Revealed {
			fmt.Fprintln(out, "Already answered. Press n for the next question.")
			continue
		}
		_ = engine.SelectAnswer(label)
		_ = engine.Submit()

		q, _ := engine.Current()
		if engine.IsCorrect() {
			fmt.Fprintln(out, "✓ Correct!")
		} else {
			fmt.Fprintf(out, "✗ Incorrect. The answer is %s.\n", q.Body.CorrectAnswer)
		}
		if q.Body.Explanation != "" {
			fmt.Fprintln(out, richtext.Render(q.Body.Explanation))
		}

		st := engine.State()
		if st.Index == st.Total-1 {
			return summarize(engine, out)
		}
		_ = engine.Next()
		fmt.Fprintln(out)
		printQuestion(engine, out)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return summarize(engine, out)
}

func printQuestion(engine *navigator.Engine, out io.Writer) {
	q, ok := engine.Current()
	if !ok {
		fmt.Fprintln(out, engine.Info())
		return
	}
	st := engine.State()

	fmt.Fprintf(out, "Question %d of %d  [%s · %s]\n", st.Index+1, st.Total, q.Difficulty, q.Domain)
	if q.Body.Paragraph != "" {
		fmt.Fprintln(out, richtext.Render(q.Body.Paragraph))
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, richtext.Render(q.Body.Question))
	for _, l := range questions.Labels() {
		fmt.Fprintf(out, "  %s) %s\n", l, richtext.Render(q.Body.Choices.Get(l)))
	}
}

func summarize(engine *navigator.Engine, out io.Writer) error {
	answered, correct := engine.Tally()
	fmt.Fprintf(out, "\nAnswered %d, correct %d.\n", answered, correct)
	if entries := engine.FlaggedEntries(); len(entries) > 0 {
		fmt.Fprintln(out, "Flagged:")
		for _, e := range entries {
			fmt.Fprintf(out, "  Question %d  %s\n", e.Index+1, e.Question.ID)
		}
	}
	return nil
}
