package app

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satprep/satprep/internal/navigator"
	"github.com/satprep/satprep/internal/questions"
	"github.com/satprep/satprep/internal/router"
	"github.com/satprep/satprep/internal/screens/home"
	"github.com/satprep/satprep/internal/screens/practice"
	"github.com/satprep/satprep/internal/screens/summary"
	"github.com/satprep/satprep/internal/session"
	"github.com/satprep/satprep/internal/ui/theme"
)

func testOptions() Options {
	discard := log.New(io.Discard, "", 0)
	storage := session.NewMemoryStorage()
	bank := &questions.Bank{Math: []questions.Question{{
		ID:         "m-1",
		Domain:     "Algebra",
		Difficulty: "Easy",
		Body: questions.Body{
			Question:      "1 + 1?",
			Choices:       questions.Choices{A: "1", B: "2", C: "3", D: "4"},
			CorrectAnswer: questions.LabelB,
		},
	}}}
	return Options{Home: home.Deps{
		Practice: practice.Deps{
			Loader: questions.NewLoader(bank),
			Flags:  session.Open(context.Background(), session.NewAdapter(storage, discard)),
			Logger: discard,
		},
		Themes: theme.NewPrefs(storage, discard),
	}}
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(testOptions())
	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEscapeOnHomeIsNoop(t *testing.T) {
	m := newAppModel(testOptions())
	_, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.router.Depth())
}

func TestEscapeLeavesPractice(t *testing.T) {
	m := newAppModel(testOptions())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	_, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, load := update(t, m, cmd())
	assert.Equal(t, 2, m.router.Depth())
	require.NotNil(t, load)
	m, _ = update(t, m, load())

	out := m.render()
	assert.Contains(t, out, "Mathematics")
	assert.Contains(t, out, "Question 1 of 1")

	_, cmd = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.True(t, popsScreen(cmd), "practice pops itself when nothing was answered")
}

func TestEscapePopsNestedScreen(t *testing.T) {
	m := newAppModel(testOptions())
	m, _ = update(t, m, router.PushScreenMsg{Screen: summary.New(navigator.Summary{Subject: questions.SubjectMath}, time.Minute)})
	require.Equal(t, 2, m.router.Depth())

	_, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}

// popsScreen runs cmd, expanding batches, and reports whether it asks the
// router to pop.
func popsScreen(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case router.PopScreenMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if popsScreen(c) {
				return true
			}
		}
	}
	return false
}

func TestTooSmallTerminal(t *testing.T) {
	m := newAppModel(testOptions())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.render(), "Terminal too small")
}
