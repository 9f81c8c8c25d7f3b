package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepo_DefaultsWhenUnset(t *testing.T) {
	r := NewSettingsRepo(NewMemoryKV())

	s, err := r.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestSettingsRepo_PutGet(t *testing.T) {
	r := NewSettingsRepo(NewMemoryKV())
	ctx := context.Background()

	s := DefaultSettings()
	s = PaletteDark.Apply(s)
	s.WeekStartMonday = true
	require.NoError(t, r.Put(ctx, s))

	got, err := r.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, got)
	assert.Equal(t, "#1a1a1a", got.BackgroundColor)
	assert.True(t, got.WeekStartMonday)
}

func TestSettingsRepo_Reset(t *testing.T) {
	r := NewSettingsRepo(NewMemoryKV())
	ctx := context.Background()

	custom := PaletteWarm.Apply(DefaultSettings())
	require.NoError(t, r.Put(ctx, custom))

	s, err := r.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)

	got, err := r.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), got)
}

func TestParsePalette(t *testing.T) {
	for _, p := range Palettes {
		got, err := ParsePalette(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ParsePalette("neon")
	assert.Error(t, err)
}

func TestPaletteApply(t *testing.T) {
	s := PaletteCool.Apply(DefaultSettings())

	assert.Equal(t, PaletteCool, s.Palette)
	assert.Equal(t, "#3498db", s.PrimaryColor)
	assert.Equal(t, "#1abc9c", s.SecondaryColor)
	assert.Equal(t, "#9b59b6", s.AccentColor)
	assert.Equal(t, "#f0f8ff", s.BackgroundColor)
	assert.Equal(t, "#2c3e50", s.TextColor)

	// Font settings are not part of a palette bundle.
	assert.Equal(t, DefaultSettings().FontFamily, s.FontFamily)
	assert.Equal(t, DefaultSettings().FontSize, s.FontSize)
}

func TestPaletteColors_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, PaletteDefault.Colors(), Palette("neon").Colors())
}
