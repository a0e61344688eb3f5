package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/satprep/satprep/internal/app"
	"github.com/satprep/satprep/internal/questions"
	"github.com/satprep/satprep/internal/screens/home"
	"github.com/satprep/satprep/internal/screens/practice"
	"github.com/satprep/satprep/internal/session"
	"github.com/satprep/satprep/internal/ui/theme"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	bank, err := openBank(cfg)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	// The TUI owns the terminal, so diagnostics go to a file or nowhere.
	if cfg.LogPath != "" {
		f, err := tea.LogToFile(cfg.LogPath, "satprep")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	logger := log.Default()

	kv := st.KV()
	flags := session.Open(ctx, session.NewAdapter(kv, logger))
	prefs := theme.NewPrefs(kv, logger)

	selected := prefs.Selected(ctx)
	if cfg.Theme != "" {
		p, err := prefs.Lookup(ctx, cfg.Theme)
		if err != nil {
			fmt.Fprintln(os.Stderr, "warning:", err)
		} else {
			selected = p
		}
	}
	theme.Apply(selected)

	counts := make(map[questions.Subject]int)
	for _, s := range questions.AllSubjects() {
		counts[s] = bank.Count(s)
	}

	opts := app.Options{Home: home.Deps{
		Practice: practice.Deps{
			Loader: questions.NewLoader(bank),
			Flags:  flags,
			Events: st.EventRepo(),
			Logger: logger,
		},
		Themes: prefs,
		Counts: counts,
	}}

	err = app.Run(ctx, opts)
	if serr := flags.Sync(ctx); serr != nil {
		fmt.Fprintln(os.Stderr, "warning: flags not saved:", serr)
	}
	return err
}
