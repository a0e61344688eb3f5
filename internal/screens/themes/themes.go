// Package themes implements the color theme picker.
package themes

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/satprep/satprep/internal/router"
	"github.com/satprep/satprep/internal/screen"
	"github.com/satprep/satprep/internal/ui/components"
	"github.com/satprep/satprep/internal/ui/layout"
	"github.com/satprep/satprep/internal/ui/theme"
)

// Screen lists preset and custom palettes. Moving the cursor previews a
// palette; Enter saves it and Esc restores the saved one.
type Screen struct {
	prefs    *theme.Prefs
	palettes []theme.Palette
	custom   map[string]bool
	saved    theme.Palette
	menu     components.Menu
	errMsg   string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.EscapeHandler = (*Screen)(nil)

// New creates the picker. The cursor starts on the active palette.
func New(prefs *theme.Prefs) *Screen {
	ctx := context.Background()
	s := &Screen{
		prefs:  prefs,
		saved:  theme.Current(),
		custom: make(map[string]bool),
	}

	s.palettes = theme.Presets()
	for _, p := range prefs.Custom(ctx) {
		s.custom[p.Name] = true
		s.palettes = append(s.palettes, p)
	}
	s.rebuildMenu()
	for i, p := range s.palettes {
		if p.Name == s.saved.Name {
			s.menu.Selected = i
		}
	}
	return s
}

func (s *Screen) rebuildMenu() {
	selected := s.menu.Selected
	items := make([]components.MenuItem, len(s.palettes))
	for i, p := range s.palettes {
		detail := string(p.Mode)
		if s.custom[p.Name] {
			detail += ", custom"
		}
		if p.Name == s.saved.Name {
			detail += "  ✓"
		}
		items[i] = components.MenuItem{Label: p.Name, Detail: detail, Action: func() tea.Cmd { return nil }}
	}
	s.menu = components.NewMenu(items)
	s.menu.Selected = selected
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Themes" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Preview"},
		{Key: "Enter", Description: "Apply"},
		{Key: "Esc", Description: "Back"},
	}
}

// HandleEscape restores the saved palette and leaves.
func (s *Screen) HandleEscape() tea.Cmd {
	theme.Apply(s.saved)
	return router.Pop
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	if kmsg.String() == "enter" {
		s.apply()
		return s, nil
	}

	before := s.menu.Selected
	s.menu, _ = s.menu.Update(msg)
	if s.menu.Selected != before {
		s.errMsg = ""
		theme.Apply(s.palettes[s.menu.Selected])
	}
	return s, nil
}

func (s *Screen) apply() {
	chosen := s.palettes[s.menu.Selected]
	p, err := s.prefs.Select(context.Background(), chosen.Name)
	if err != nil {
		s.errMsg = err.Error()
		theme.Apply(s.saved)
		return
	}
	s.errMsg = ""
	s.saved = p
	theme.Apply(p)
	s.rebuildMenu()
}

// Saved returns the palette that was last applied and stored.
func (s *Screen) Saved() theme.Palette { return s.saved }

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Choose a theme") + "\n\n")
	b.WriteString(strings.TrimRight(s.menu.View(), "\n") + "\n\n")
	b.WriteString(swatch(theme.Current()))
	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.Incorrect.Render(s.errMsg))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(b.String()))
}

// swatch shows one block per palette color.
func swatch(p theme.Palette) string {
	colors := []string{p.Primary, p.Secondary, p.Accent, p.Success, p.Error, p.Text, p.TextDim, p.Background, p.Card, p.Border}
	blocks := make([]string, len(colors))
	for i, c := range colors {
		blocks[i] = lipgloss.NewStyle().Background(lipgloss.Color(c)).Render("   ")
	}
	return strings.Join(blocks, "") + "\n" + theme.Hint.Render(fmt.Sprintf("%s (%s)", p.Name, p.Mode))
}
