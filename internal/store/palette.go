package store

import "fmt"

// Palette is a closed enumeration of the named color presets offered by
// the settings page.
type Palette string

const (
	PaletteDefault Palette = "default"
	PaletteDark    Palette = "dark"
	PaletteWarm    Palette = "warm"
	PaletteCool    Palette = "cool"
	PalettePastel  Palette = "pastel"
)

// Palettes lists all presets in display order.
var Palettes = []Palette{
	PaletteDefault,
	PaletteDark,
	PaletteWarm,
	PaletteCool,
	PalettePastel,
}

// ColorBundle is the set of color values a palette preset applies.
type ColorBundle struct {
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	AccentColor     string `json:"accentColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
}

var paletteColors = map[Palette]ColorBundle{
	PaletteDefault: {
		PrimaryColor:    "#4a90e2",
		SecondaryColor:  "#7b68ee",
		AccentColor:     "#50c878",
		BackgroundColor: "#ffffff",
		TextColor:       "#333333",
	},
	PaletteDark: {
		PrimaryColor:    "#2c3e50",
		SecondaryColor:  "#34495e",
		AccentColor:     "#7f8c8d",
		BackgroundColor: "#1a1a1a",
		TextColor:       "#ffffff",
	},
	PaletteWarm: {
		PrimaryColor:    "#e74c3c",
		SecondaryColor:  "#f39c12",
		AccentColor:     "#e67e22",
		BackgroundColor: "#fff5f0",
		TextColor:       "#2c2c2c",
	},
	PaletteCool: {
		PrimaryColor:    "#3498db",
		SecondaryColor:  "#1abc9c",
		AccentColor:     "#9b59b6",
		BackgroundColor: "#f0f8ff",
		TextColor:       "#2c3e50",
	},
	PalettePastel: {
		PrimaryColor:    "#ffb3ba",
		SecondaryColor:  "#bae1ff",
		AccentColor:     "#baffc9",
		BackgroundColor: "#fffef7",
		TextColor:       "#4a4a4a",
	},
}

// ParsePalette validates a palette name.
func ParsePalette(s string) (Palette, error) {
	p := Palette(s)
	if _, ok := paletteColors[p]; !ok {
		return "", fmt.Errorf("unknown palette %q", s)
	}
	return p, nil
}

// Colors returns the color bundle for the palette. Unknown palettes fall
// back to the default bundle so a stale stored value cannot break rendering.
func (p Palette) Colors() ColorBundle {
	if c, ok := paletteColors[p]; ok {
		return c
	}
	return paletteColors[PaletteDefault]
}

// Apply overwrites the color fields of a settings record with the
// palette's bundle and records the palette name.
func (p Palette) Apply(s Settings) Settings {
	c := p.Colors()
	s.PrimaryColor = c.PrimaryColor
	s.SecondaryColor = c.SecondaryColor
	s.AccentColor = c.AccentColor
	s.BackgroundColor = c.BackgroundColor
	s.TextColor = c.TextColor
	s.Palette = p
	return s
}
