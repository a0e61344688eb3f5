package theme

import (
	"fmt"
	"regexp"
	"strings"
)

// Mode is the light or dark flavor of a palette.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Palette is a complete set of hex colors. Every field must be set; there is
// no merging with a base palette.
type Palette struct {
	Name       string `json:"name"`
	Mode       Mode   `json:"mode"`
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Success    string `json:"success"`
	Error      string `json:"error"`
	Text       string `json:"text"`
	TextDim    string `json:"text_dim"`
	Background string `json:"background"`
	Card       string `json:"card"`
	Border     string `json:"border"`
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate checks the name, mode and that every color is #RRGGBB.
func (p Palette) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("theme name is empty")
	}
	if p.Mode != ModeLight && p.Mode != ModeDark {
		return fmt.Errorf("theme %q: mode must be light or dark, got %q", p.Name, p.Mode)
	}
	colors := []struct{ field, value string }{
		{"primary", p.Primary},
		{"secondary", p.Secondary},
		{"accent", p.Accent},
		{"success", p.Success},
		{"error", p.Error},
		{"text", p.Text},
		{"text_dim", p.TextDim},
		{"background", p.Background},
		{"card", p.Card},
		{"border", p.Border},
	}
	for _, c := range colors {
		if !hexColor.MatchString(c.value) {
			return fmt.Errorf("theme %q: %s must be a #RRGGBB color, got %q", p.Name, c.field, c.value)
		}
	}
	return nil
}

// DefaultName is the palette used when nothing else is selected.
const DefaultName = "Classic"

var presets = []Palette{
	{
		Name: "Classic", Mode: ModeDark,
		Primary: "#8B5CF6", Secondary: "#14B8A6", Accent: "#F97316",
		Success: "#22C55E", Error: "#F43F5E",
		Text: "#F8FAFC", TextDim: "#94A3B8",
		Background: "#0F172A", Card: "#1E293B", Border: "#334155",
	},
	{
		Name: "Gruvbox Light", Mode: ModeLight,
		Primary: "#458588", Secondary: "#B8BB26", Accent: "#076678",
		Success: "#79740E", Error: "#CC241D",
		Text: "#3C3836", TextDim: "#504945",
		Background: "#FBF1C7", Card: "#F9F5D7", Border: "#928374",
	},
	{
		Name: "Gruvbox Dark", Mode: ModeDark,
		Primary: "#83A598", Secondary: "#B8BB26", Accent: "#8EC07C",
		Success: "#B8BB26", Error: "#FB4934",
		Text: "#EBDBB2", TextDim: "#D5C4A1",
		Background: "#282828", Card: "#32302F", Border: "#928374",
	},
	{
		Name: "Catppuccin Mocha", Mode: ModeDark,
		Primary: "#89B4FA", Secondary: "#F5C2E7", Accent: "#B4BEFE",
		Success: "#A6E3A1", Error: "#F38BA8",
		Text: "#CDD6F4", TextDim: "#BAC2DE",
		Background: "#1E1E2E", Card: "#24273A", Border: "#6C7086",
	},
	{
		Name: "Catppuccin Latte", Mode: ModeLight,
		Primary: "#7287FD", Secondary: "#EA76CB", Accent: "#8839EF",
		Success: "#40A02B", Error: "#D20F39",
		Text: "#4C4F69", TextDim: "#5C5F77",
		Background: "#EFF1F5", Card: "#F4F5F8", Border: "#ACB0BE",
	},
	{
		Name: "Nord", Mode: ModeDark,
		Primary: "#88C0D0", Secondary: "#B48EAD", Accent: "#8FBCBB",
		Success: "#A3BE8C", Error: "#BF616A",
		Text: "#ECEFF4", TextDim: "#E5E9F0",
		Background: "#2E3440", Card: "#3B4252", Border: "#4C566A",
	},
	{
		Name: "Dracula", Mode: ModeDark,
		Primary: "#BD93F9", Secondary: "#50FA7B", Accent: "#FF79C6",
		Success: "#50FA7B", Error: "#FF5555",
		Text: "#F8F8F2", TextDim: "#BFBFBF",
		Background: "#282A36", Card: "#44475A", Border: "#6272A4",
	},
	{
		Name: "Tokyo Night", Mode: ModeDark,
		Primary: "#7AA2F7", Secondary: "#BB9AF7", Accent: "#2AC3DE",
		Success: "#9ECE6A", Error: "#F7768E",
		Text: "#C0CAF5", TextDim: "#A9B1D6",
		Background: "#1A1B26", Card: "#24283B", Border: "#565F89",
	},
	{
		Name: "Solarized Light", Mode: ModeLight,
		Primary: "#268BD2", Secondary: "#859900", Accent: "#2AA198",
		Success: "#859900", Error: "#DC322F",
		Text: "#073642", TextDim: "#586E75",
		Background: "#FDF6E3", Card: "#EEE8D5", Border: "#93A1A1",
	},
	{
		Name: "One Dark", Mode: ModeDark,
		Primary: "#61AFEF", Secondary: "#98C379", Accent: "#56B6C2",
		Success: "#98C379", Error: "#E06C75",
		Text: "#ABB2BF", TextDim: "#828997",
		Background: "#282C34", Card: "#21252B", Border: "#4B5263",
	},
}

// Presets returns the built-in palettes, Classic first.
func Presets() []Palette {
	return append([]Palette(nil), presets...)
}

// Preset looks up a built-in palette by case-insensitive name.
func Preset(name string) (Palette, bool) {
	return find(presets, name)
}

func find(ps []Palette, name string) (Palette, bool) {
	for _, p := range ps {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, true
		}
	}
	return Palette{}, false
}
