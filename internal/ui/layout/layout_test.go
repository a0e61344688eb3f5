package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestSizeThresholds(t *testing.T) {
	assert.True(t, IsTooSmall(79, 24))
	assert.True(t, IsTooSmall(80, 23))
	assert.False(t, IsTooSmall(80, 24))
	assert.True(t, IsCompact(99, 30))
	assert.True(t, IsCompact(120, 18))
	assert.False(t, IsCompact(120, 30))
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Mathematics", "⚑ 2", 100)
	assert.Contains(t, out, "SAT Prep")
	assert.Contains(t, out, "Mathematics")
	assert.Contains(t, out, "⚑ 2")
	assert.Equal(t, 3, lipgloss.Height(out))
}

func TestRenderFooterHints(t *testing.T) {
	out := RenderFooter(DefaultHints(true), 80)
	assert.Contains(t, out, "Esc")
	assert.Contains(t, out, "Back")

	out = RenderFooter(DefaultHints(false), 80)
	assert.Contains(t, out, "Enter")
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("T", "", 80)
	footer := RenderFooter(nil, 80)
	frame := RenderFrame(header, "body", footer, 80, 24)
	assert.Equal(t, 24, lipgloss.Height(frame))
	assert.True(t, strings.Contains(frame, "body"))
}
