package domain

import (
	"fmt"
	"regexp"
)

// Theme selects the light or dark base palette.
type Theme string

// Available themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// IsValid returns true if the theme is recognised.
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// MaxAnimationSpeed bounds the animation speed multiplier.
const MaxAnimationSpeed = 5.0

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsHexColor reports whether s is a #RGB or #RRGGBB colour.
func IsHexColor(s string) bool {
	return hexColor.MatchString(s)
}

// Customization is the single process-wide theme record.
type Customization struct {
	PrimaryColor     string  `json:"primaryColor"`
	SecondaryColor   string  `json:"secondaryColor"`
	AccentColor      string  `json:"accentColor"`
	FontPrimary      string  `json:"fontPrimary"`
	FontSecondary    string  `json:"fontSecondary"`
	AnimationSpeed   float64 `json:"animationSpeed"`
	ParticlesEnabled bool    `json:"particlesEnabled"`
	Theme            Theme   `json:"theme"`
}

// DefaultCustomization returns the theme a new portfolio starts with.
func DefaultCustomization() Customization {
	return Customization{
		PrimaryColor:     "#E8D5C4",
		SecondaryColor:   "#1A1A1A",
		AccentColor:      "#4A4A4A",
		FontPrimary:      "Sorts Mill Goudy",
		FontSecondary:    "Oranienbaum",
		AnimationSpeed:   1,
		ParticlesEnabled: true,
		Theme:            ThemeLight,
	}
}

// Validate checks colours, speed and theme.
func (c Customization) Validate() error {
	for name, col := range map[string]string{
		"primaryColor":   c.PrimaryColor,
		"secondaryColor": c.SecondaryColor,
		"accentColor":    c.AccentColor,
	} {
		if !IsHexColor(col) {
			return fmt.Errorf("%w: %s %q is not a hex colour", ErrInvalidInput, name, col)
		}
	}
	if c.FontPrimary == "" {
		return fmt.Errorf("%w: fontPrimary is required", ErrInvalidInput)
	}
	if c.AnimationSpeed <= 0 || c.AnimationSpeed > MaxAnimationSpeed {
		return fmt.Errorf("%w: animationSpeed must be in (0, %g]", ErrInvalidInput, MaxAnimationSpeed)
	}
	if !c.Theme.IsValid() {
		return fmt.Errorf("%w: theme %q", ErrInvalidInput, c.Theme)
	}
	return nil
}

// CustomizationPatch carries the customization fields an update changes.
type CustomizationPatch struct {
	PrimaryColor     *string  `json:"primaryColor,omitempty"`
	SecondaryColor   *string  `json:"secondaryColor,omitempty"`
	AccentColor      *string  `json:"accentColor,omitempty"`
	FontPrimary      *string  `json:"fontPrimary,omitempty"`
	FontSecondary    *string  `json:"fontSecondary,omitempty"`
	AnimationSpeed   *float64 `json:"animationSpeed,omitempty"`
	ParticlesEnabled *bool    `json:"particlesEnabled,omitempty"`
	Theme            *Theme   `json:"theme,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p CustomizationPatch) IsEmpty() bool {
	return p.PrimaryColor == nil && p.SecondaryColor == nil && p.AccentColor == nil &&
		p.FontPrimary == nil && p.FontSecondary == nil && p.AnimationSpeed == nil &&
		p.ParticlesEnabled == nil && p.Theme == nil
}

// Apply merges the patch into c and validates the result.
func (p CustomizationPatch) Apply(c Customization) (Customization, error) {
	if p.PrimaryColor != nil {
		c.PrimaryColor = *p.PrimaryColor
	}
	if p.SecondaryColor != nil {
		c.SecondaryColor = *p.SecondaryColor
	}
	if p.AccentColor != nil {
		c.AccentColor = *p.AccentColor
	}
	if p.FontPrimary != nil {
		c.FontPrimary = *p.FontPrimary
	}
	if p.FontSecondary != nil {
		c.FontSecondary = *p.FontSecondary
	}
	if p.AnimationSpeed != nil {
		c.AnimationSpeed = *p.AnimationSpeed
	}
	if p.ParticlesEnabled != nil {
		c.ParticlesEnabled = *p.ParticlesEnabled
	}
	if p.Theme != nil {
		c.Theme = *p.Theme
	}
	if err := c.Validate(); err != nil {
		return Customization{}, err
	}
	return c, nil
}
