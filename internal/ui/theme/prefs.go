package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Preference keys.
const (
	SelectedKey = "selectedTheme"
	CustomKey   = "customThemes"
)

// ErrUnknownTheme is returned when a name matches no preset or custom theme.
var ErrUnknownTheme = errors.New("unknown theme")

// Storage is the string key-value store preferences are kept in.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Prefs persists the selected theme and user-defined palettes. Unreadable
// values are logged and treated as absent.
type Prefs struct {
	storage Storage
	logger  *log.Logger
}

// NewPrefs creates a Prefs over storage. A nil logger uses log.Default.
func NewPrefs(storage Storage, logger *log.Logger) *Prefs {
	if logger == nil {
		logger = log.Default()
	}
	return &Prefs{storage: storage, logger: logger}
}

// All returns the presets followed by the custom themes.
func (p *Prefs) All(ctx context.Context) []Palette {
	return append(Presets(), p.Custom(ctx)...)
}

// Lookup resolves name against presets first, then custom themes.
func (p *Prefs) Lookup(ctx context.Context, name string) (Palette, error) {
	if pal, ok := Preset(name); ok {
		return pal, nil
	}
	if pal, ok := find(p.Custom(ctx), name); ok {
		return pal, nil
	}
	return Palette{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
}

// Selected returns the stored palette, or the default when none is stored
// or the stored name no longer resolves.
func (p *Prefs) Selected(ctx context.Context) Palette {
	def, _ := Preset(DefaultName)

	name, ok, err := p.storage.Get(ctx, SelectedKey)
	if err != nil {
		p.logger.Printf("theme: read %s: %v", SelectedKey, err)
		return def
	}
	if !ok {
		return def
	}
	pal, err := p.Lookup(ctx, name)
	if err != nil {
		p.logger.Printf("theme: %v, using %s", err, DefaultName)
		return def
	}
	return pal
}

// Select stores name as the selected theme and returns its palette.
func (p *Prefs) Select(ctx context.Context, name string) (Palette, error) {
	pal, err := p.Lookup(ctx, name)
	if err != nil {
		return Palette{}, err
	}
	if err := p.storage.Set(ctx, SelectedKey, pal.Name); err != nil {
		return Palette{}, fmt.Errorf("save selected theme: %w", err)
	}
	return pal, nil
}

// Custom returns the stored user palettes. Invalid entries are skipped.
func (p *Prefs) Custom(ctx context.Context) []Palette {
	raw, ok, err := p.storage.Get(ctx, CustomKey)
	if err != nil {
		p.logger.Printf("theme: read %s: %v", CustomKey, err)
		return nil
	}
	if !ok {
		return nil
	}

	var stored []Palette
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		p.logger.Printf("theme: discarding corrupt %s: %v", CustomKey, err)
		return nil
	}

	valid := stored[:0]
	for _, pal := range stored {
		if err := pal.Validate(); err != nil {
			p.logger.Printf("theme: skipping custom theme: %v", err)
			continue
		}
		valid = append(valid, pal)
	}
	return valid
}

// SaveCustom adds pal to the custom themes, replacing one of the same name.
// Names of presets are reserved.
func (p *Prefs) SaveCustom(ctx context.Context, pal Palette) error {
	if err := pal.Validate(); err != nil {
		return err
	}
	if _, ok := Preset(pal.Name); ok {
		return fmt.Errorf("theme %q is a built-in theme", pal.Name)
	}

	custom := p.Custom(ctx)
	replaced := false
	for i := range custom {
		if strings.EqualFold(custom[i].Name, pal.Name) {
			custom[i] = pal
			replaced = true
		}
	}
	if !replaced {
		custom = append(custom, pal)
	}
	return p.writeCustom(ctx, custom)
}

// DeleteCustom removes the custom theme called name.
func (p *Prefs) DeleteCustom(ctx context.Context, name string) error {
	custom := p.Custom(ctx)
	kept := custom[:0]
	for _, pal := range custom {
		if !strings.EqualFold(pal.Name, name) {
			kept = append(kept, pal)
		}
	}
	if len(kept) == len(custom) {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return p.writeCustom(ctx, kept)
}

func (p *Prefs) writeCustom(ctx context.Context, custom []Palette) error {
	if custom == nil {
		custom = []Palette{}
	}
	data, err := json.Marshal(custom)
	if err != nil {
		return fmt.Errorf("encode custom themes: %w", err)
	}
	if err := p.storage.Set(ctx, CustomKey, string(data)); err != nil {
		return fmt.Errorf("save custom themes: %w", err)
	}
	return nil
}
