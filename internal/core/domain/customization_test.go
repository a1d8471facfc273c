package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCustomization_Valid(t *testing.T) {
	c := DefaultCustomization()
	require.NoError(t, c.Validate())
	assert.Equal(t, "#E8D5C4", c.PrimaryColor)
	assert.Equal(t, "Sorts Mill Goudy", c.FontPrimary)
	assert.Equal(t, ThemeLight, c.Theme)
}

func TestIsHexColor(t *testing.T) {
	tests := []struct {
		in       string
		expected bool
	}{
		{"#fff", true},
		{"#1A1A1A", true},
		{"1A1A1A", false},
		{"#12345", false},
		{"#GGGGGG", false},
		{"", false},
		{"red", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsHexColor(tt.in))
		})
	}
}

func TestCustomization_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Customization)
	}{
		{"bad primary", func(c *Customization) { c.PrimaryColor = "blue" }},
		{"bad accent", func(c *Customization) { c.AccentColor = "#12" }},
		{"missing font", func(c *Customization) { c.FontPrimary = "" }},
		{"zero speed", func(c *Customization) { c.AnimationSpeed = 0 }},
		{"speed too high", func(c *Customization) { c.AnimationSpeed = 6 }},
		{"bad theme", func(c *Customization) { c.Theme = "sepia" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultCustomization()
			tt.mutate(&c)
			assert.True(t, errors.Is(c.Validate(), ErrInvalidInput))
		})
	}
}

func TestCustomizationPatch_Apply(t *testing.T) {
	primary := "#112233"
	speed := 2.5
	dark := ThemeDark

	out, err := CustomizationPatch{
		PrimaryColor:   &primary,
		AnimationSpeed: &speed,
		Theme:          &dark,
	}.Apply(DefaultCustomization())
	require.NoError(t, err)

	assert.Equal(t, "#112233", out.PrimaryColor)
	assert.Equal(t, 2.5, out.AnimationSpeed)
	assert.Equal(t, ThemeDark, out.Theme)
	assert.Equal(t, "#1A1A1A", out.SecondaryColor)
}

func TestCustomizationPatch_Apply_Invalid(t *testing.T) {
	bad := "nope"
	_, err := CustomizationPatch{SecondaryColor: &bad}.Apply(DefaultCustomization())
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestCustomizationPatch_IsEmpty(t *testing.T) {
	assert.True(t, CustomizationPatch{}.IsEmpty())
	on := true
	assert.False(t, CustomizationPatch{ParticlesEnabled: &on}.IsEmpty())
}
