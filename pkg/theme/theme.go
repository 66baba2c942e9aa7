// Package theme ships the built-in presets and knows which chroma syntax
// themes exist. Presets are named bundles of option values that sit between
// explicit flags and hard defaults in the resolution cascade.
package theme

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/klauspost/compress/gzip"
)

// Default syntax themes for the two terminal background modes.
const (
	DefaultDarkTheme  = "monokai"
	DefaultLightTheme = "github"
)

//go:generate gzip -9 -f -k -n assets/presets.toml

//go:embed assets/presets.toml.gz
var presetAsset []byte

// Preset is one named bundle of option values, keyed by option name.
type Preset map[string]any

// String returns the preset's value for an option when it is a string.
func (p Preset) String(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

// Bool returns the preset's value for an option when it is a boolean.
func (p Preset) Bool(key string) (bool, bool) {
	v, ok := p[key].(bool)
	return v, ok
}

// Int returns the preset's value for an option when it is an integer.
func (p Preset) Int(key string) (int, bool) {
	v, ok := p[key].(int64)
	return int(v), ok
}

// Float returns the preset's value for an option when it is numeric.
func (p Preset) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	}
	return 0, false
}

var (
	presetsOnce sync.Once
	presets     map[string]Preset
	presetsErr  error
)

// BuiltinPresets decodes the embedded preset asset once and returns the
// presets by name.
func BuiltinPresets() (map[string]Preset, error) {
	presetsOnce.Do(func() {
		presets, presetsErr = decodePresets(presetAsset)
	})
	return presets, presetsErr
}

func decodePresets(asset []byte) (map[string]Preset, error) {
	zr, err := gzip.NewReader(bytes.NewReader(asset))
	if err != nil {
		return nil, fmt.Errorf("preset asset: %w", err)
	}
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("preset asset: decompress: %w", err)
	}
	var doc struct {
		Presets map[string]Preset `toml:"presets"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("preset asset: decode: %w", err)
	}
	return doc.Presets, nil
}

// IsNoSyntaxHighlightingName reports whether a theme name disables syntax
// highlighting entirely.
func IsNoSyntaxHighlightingName(name string) bool {
	return strings.EqualFold(name, "none")
}

// IsSyntaxTheme reports whether name is a registered chroma style.
func IsSyntaxTheme(name string) bool {
	for _, n := range styles.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// SyntaxThemeNames lists the available chroma styles in registry order.
func SyntaxThemeNames() []string {
	return styles.Names()
}

// lightSyntaxThemes are the shipped chroma styles designed for light
// terminal backgrounds; selecting one implies the light default palette
// for the diff backgrounds.
var lightSyntaxThemes = map[string]bool{
	"abap":             true,
	"autumn":           true,
	"borland":          true,
	"colorful":         true,
	"emacs":            true,
	"friendly":         true,
	"github":           true,
	"gruvbox-light":    true,
	"lovelace":         true,
	"manni":            true,
	"murphy":           true,
	"onesenterprise":   true,
	"paraiso-light":    true,
	"pastie":           true,
	"perldoc":          true,
	"solarized-light":  true,
	"tango":            true,
	"trac":             true,
	"vs":               true,
	"xcode":            true,
	"catppuccin-latte": true,
}

// IsLightSyntaxTheme reports whether the named theme targets a light
// terminal background.
func IsLightSyntaxTheme(name string) bool {
	return lightSyntaxThemes[strings.ToLower(name)]
}
