package home

import (
	"context"
	"io"
	"log"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satprep/satprep/internal/questions"
	"github.com/satprep/satprep/internal/router"
	"github.com/satprep/satprep/internal/screens/practice"
	"github.com/satprep/satprep/internal/screens/themes"
	"github.com/satprep/satprep/internal/session"
	"github.com/satprep/satprep/internal/store"
	"github.com/satprep/satprep/internal/ui/theme"
)

func testDeps() Deps {
	discard := log.New(io.Discard, "", 0)
	storage := session.NewMemoryStorage()
	flags := session.Open(context.Background(), session.NewAdapter(storage, discard))
	flags.Toggle("m-1")
	return Deps{
		Practice: practice.Deps{
			Loader: questions.NewLoader(&questions.Bank{}),
			Flags:  flags,
			Logger: discard,
		},
		Themes: theme.NewPrefs(storage, discard),
		Counts: map[questions.Subject]int{questions.SubjectMath: 12, questions.SubjectEnglish: 7},
	}
}

type nopRepo struct{ store.EventRepo }

func press(h *HomeScreen, code rune) tea.Cmd {
	_, cmd := h.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func TestMathematicsPushesPractice(t *testing.T) {
	h := New(testDeps())
	cmd := press(h, tea.KeyEnter)
	require.NotNil(t, cmd)

	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	p, ok := msg.Screen.(*practice.Screen)
	require.True(t, ok)
	assert.Equal(t, "Mathematics", p.Title())
}

func TestEnglishPushesPractice(t *testing.T) {
	h := New(testDeps())
	press(h, tea.KeyDown)
	msg := press(h, tea.KeyEnter)().(router.PushScreenMsg)
	assert.Equal(t, "English", msg.Screen.Title())
}

func TestHistoryEntry(t *testing.T) {
	deps := testDeps()
	deps.Practice.Events = nopRepo{}
	h := New(deps)
	press(h, tea.KeyDown)
	press(h, tea.KeyDown)
	msg := press(h, tea.KeyEnter)().(router.PushScreenMsg)
	assert.Equal(t, "History", msg.Screen.Title())
}

func TestThemesEntry(t *testing.T) {
	h := New(testDeps())
	press(h, tea.KeyDown)
	press(h, tea.KeyDown)
	msg := press(h, tea.KeyEnter)().(router.PushScreenMsg)
	_, ok := msg.Screen.(*themes.Screen)
	assert.True(t, ok)
}

func TestThemesDisabledWithoutPrefs(t *testing.T) {
	deps := testDeps()
	deps.Themes = nil
	h := New(deps)
	press(h, tea.KeyDown)
	press(h, tea.KeyDown)
	assert.Equal(t, 4, h.menu.Selected, "disabled items are skipped")
}

func TestExitQuits(t *testing.T) {
	h := New(testDeps())
	for range 4 {
		press(h, tea.KeyDown)
	}
	cmd := press(h, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsStats(t *testing.T) {
	h := New(testDeps())
	out := h.View(120, 40)
	assert.Contains(t, out, "12")
	assert.Contains(t, out, "7")
	assert.Contains(t, out, "⚑ 1")
	assert.Contains(t, out, "MATHEMATICS")

	compact := h.View(80, 20)
	assert.Contains(t, compact, "S · A · T")
}
