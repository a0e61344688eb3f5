package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/satprep/satprep/internal/ui/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "Manage color themes",
}

func openPrefs(cmd *cobra.Command) (*theme.Prefs, func() error, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return theme.NewPrefs(st.KV(), stderrLogger), st.Close, nil
}

var themesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List preset and custom themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, closeFn, err := openPrefs(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		ctx := cmd.Context()
		selected := prefs.Selected(ctx).Name
		custom := make(map[string]bool)
		for _, p := range prefs.Custom(ctx) {
			custom[p.Name] = true
		}

		for _, p := range prefs.All(ctx) {
			mark := " "
			if p.Name == selected {
				mark = "*"
			}
			kind := "preset"
			if custom[p.Name] {
				kind = "custom"
			}
			fmt.Printf("%s %-20s  %-5s  %s\n", mark, p.Name, p.Mode, kind)
		}
		return nil
	},
}

var themesUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Select the theme used at startup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, closeFn, err := openPrefs(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		p, err := prefs.Select(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println("Selected", p.Name)
		return nil
	},
}

var themesAddCmd = &cobra.Command{
	Use:   "add <palette.json>",
	Short: "Add or replace a custom theme from a JSON palette",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read palette: %w", err)
		}
		var p theme.Palette
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("parse palette: %w", err)
		}

		prefs, closeFn, err := openPrefs(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := prefs.SaveCustom(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Println("Saved", p.Name)
		return nil
	},
}

var themesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a custom theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, closeFn, err := openPrefs(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := prefs.DeleteCustom(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Removed", args[0])
		return nil
	},
}

func init() {
	themesCmd.AddCommand(themesListCmd)
	themesCmd.AddCommand(themesUseCmd)
	themesCmd.AddCommand(themesAddCmd)
	themesCmd.AddCommand(themesRemoveCmd)
}
