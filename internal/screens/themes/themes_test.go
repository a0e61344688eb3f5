package themes

import (
	"context"
	"io"
	"log"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satprep/satprep/internal/router"
	"github.com/satprep/satprep/internal/session"
	"github.com/satprep/satprep/internal/ui/theme"
)

func newPrefs(t *testing.T) (*theme.Prefs, *session.MemoryStorage) {
	t.Helper()
	t.Cleanup(func() {
		p, _ := theme.Preset(theme.DefaultName)
		theme.Apply(p)
	})
	storage := session.NewMemoryStorage()
	return theme.NewPrefs(storage, log.New(io.Discard, "", 0)), storage
}

func TestPreviewAndRevert(t *testing.T) {
	prefs, _ := newPrefs(t)
	s := New(prefs)
	assert.Equal(t, theme.DefaultName, theme.Current().Name)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.NotEqual(t, theme.DefaultName, theme.Current().Name, "moving previews")

	cmd := s.HandleEscape()
	assert.Equal(t, router.PopScreenMsg{}, cmd())
	assert.Equal(t, theme.DefaultName, theme.Current().Name, "escape restores")
}

func TestEnterSavesSelection(t *testing.T) {
	prefs, storage := newPrefs(t)
	s := New(prefs)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	want := theme.Presets()[2].Name
	assert.Equal(t, want, s.Saved().Name)
	assert.Equal(t, want, theme.Current().Name)

	v, ok, err := storage.Get(context.Background(), theme.SelectedKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, v)

	s.HandleEscape()
	assert.Equal(t, want, theme.Current().Name, "saved theme survives escape")
}

func TestCustomThemesListed(t *testing.T) {
	prefs, _ := newPrefs(t)
	custom, _ := theme.Preset("Nord")
	custom.Name = "Late Night"
	require.NoError(t, prefs.SaveCustom(context.Background(), custom))

	out := New(prefs).View(100, 40)
	assert.Contains(t, out, "Late Night")
	assert.Contains(t, out, "custom")
}
