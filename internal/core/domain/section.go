package domain

import (
	"fmt"
	"strings"
)

// SectionType identifies the kind of content block a section holds.
type SectionType string

// Available section types.
const (
	SectionHero         SectionType = "hero"
	SectionAbout        SectionType = "about"
	SectionProjects     SectionType = "projects"
	SectionSkills       SectionType = "skills"
	SectionExperience   SectionType = "experience"
	SectionEducation    SectionType = "education"
	SectionContact      SectionType = "contact"
	SectionTestimonials SectionType = "testimonials"
	SectionCustom       SectionType = "custom"
)

// AllSectionTypes returns every section type in palette order.
func AllSectionTypes() []SectionType {
	return []SectionType{
		SectionHero,
		SectionAbout,
		SectionProjects,
		SectionSkills,
		SectionExperience,
		SectionEducation,
		SectionContact,
		SectionTestimonials,
		SectionCustom,
	}
}

// IsValid returns true if the section type is recognised.
func (t SectionType) IsValid() bool {
	switch t {
	case SectionHero, SectionAbout, SectionProjects, SectionSkills, SectionExperience,
		SectionEducation, SectionContact, SectionTestimonials, SectionCustom:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SectionType) String() string {
	return string(t)
}

// DefaultTitle returns the title a freshly added section of this type receives.
func (t SectionType) DefaultTitle() string {
	switch t {
	case SectionHero:
		return "Hero"
	case SectionAbout:
		return "About Me"
	case SectionProjects:
		return "My Projects"
	case SectionSkills:
		return "Skills & Expertise"
	case SectionExperience:
		return "Work Experience"
	case SectionEducation:
		return "Education"
	case SectionContact:
		return "Get In Touch"
	case SectionTestimonials:
		return "Testimonials"
	default:
		return "New Section"
	}
}

// ParseSectionType converts user input to a SectionType.
func ParseSectionType(s string) (SectionType, error) {
	t := SectionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: section type %q", ErrUnsupportedType, s)
	}
	return t, nil
}

// AnimationType is the entrance effect applied to a section.
type AnimationType string

// Available animation types.
const (
	AnimationFadeIn     AnimationType = "fadeIn"
	AnimationSlideUp    AnimationType = "slideUp"
	AnimationSlideDown  AnimationType = "slideDown"
	AnimationSlideLeft  AnimationType = "slideLeft"
	AnimationSlideRight AnimationType = "slideRight"
	AnimationScale      AnimationType = "scale"
	AnimationRotate     AnimationType = "rotate"
	AnimationReveal     AnimationType = "reveal"
	AnimationStagger    AnimationType = "stagger"
	AnimationCustom     AnimationType = "custom"
)

// IsValid returns true if the animation type is recognised.
func (a AnimationType) IsValid() bool {
	switch a {
	case AnimationFadeIn, AnimationSlideUp, AnimationSlideDown, AnimationSlideLeft,
		AnimationSlideRight, AnimationScale, AnimationRotate, AnimationReveal,
		AnimationStagger, AnimationCustom:
		return true
	default:
		return false
	}
}

// AnimationTrigger is the event that starts a section animation.
type AnimationTrigger string

// Available animation triggers.
const (
	TriggerScroll AnimationTrigger = "scroll"
	TriggerHover  AnimationTrigger = "hover"
	TriggerClick  AnimationTrigger = "click"
	TriggerLoad   AnimationTrigger = "load"
)

// IsValid returns true if the trigger is recognised.
func (t AnimationTrigger) IsValid() bool {
	switch t {
	case TriggerScroll, TriggerHover, TriggerClick, TriggerLoad:
		return true
	default:
		return false
	}
}

// SectionStyles holds optional per-section overrides layered over the
// global customization. Empty fields inherit.
type SectionStyles struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	Padding         string `json:"padding,omitempty"`
	Margin          string `json:"margin,omitempty"`
	BorderRadius    string `json:"borderRadius,omitempty"`
	CustomCSS       string `json:"customCSS,omitempty"`
}

// Merge returns s with every non-empty field of patch applied.
func (s SectionStyles) Merge(patch SectionStyles) SectionStyles {
	if patch.BackgroundColor != "" {
		s.BackgroundColor = patch.BackgroundColor
	}
	if patch.TextColor != "" {
		s.TextColor = patch.TextColor
	}
	if patch.Padding != "" {
		s.Padding = patch.Padding
	}
	if patch.Margin != "" {
		s.Margin = patch.Margin
	}
	if patch.BorderRadius != "" {
		s.BorderRadius = patch.BorderRadius
	}
	if patch.CustomCSS != "" {
		s.CustomCSS = patch.CustomCSS
	}
	return s
}

// AnimationConfig describes how and when a section animates.
type AnimationConfig struct {
	Enabled  bool             `json:"enabled"`
	Type     AnimationType    `json:"type"`
	Duration int              `json:"duration"` // milliseconds
	Delay    int              `json:"delay"`    // milliseconds
	Easing   string           `json:"easing"`
	Trigger  AnimationTrigger `json:"trigger"`
}

// AnimationPatch carries the animation fields an update changes.
type AnimationPatch struct {
	Enabled  *bool             `json:"enabled,omitempty"`
	Type     *AnimationType    `json:"type,omitempty"`
	Duration *int              `json:"duration,omitempty"`
	Delay    *int              `json:"delay,omitempty"`
	Easing   *string           `json:"easing,omitempty"`
	Trigger  *AnimationTrigger `json:"trigger,omitempty"`
}

// Apply returns a with the patch fields applied.
func (p AnimationPatch) Apply(a AnimationConfig) AnimationConfig {
	if p.Enabled != nil {
		a.Enabled = *p.Enabled
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Duration != nil {
		a.Duration = *p.Duration
	}
	if p.Delay != nil {
		a.Delay = *p.Delay
	}
	if p.Easing != nil {
		a.Easing = *p.Easing
	}
	if p.Trigger != nil {
		a.Trigger = *p.Trigger
	}
	return a
}

// Validate checks the patched values.
func (p AnimationPatch) Validate() error {
	if p.Type != nil && !p.Type.IsValid() {
		return fmt.Errorf("%w: animation type %q", ErrInvalidInput, *p.Type)
	}
	if p.Trigger != nil && !p.Trigger.IsValid() {
		return fmt.Errorf("%w: animation trigger %q", ErrInvalidInput, *p.Trigger)
	}
	if p.Duration != nil && *p.Duration < 0 {
		return fmt.Errorf("%w: negative animation duration", ErrInvalidInput)
	}
	if p.Delay != nil && *p.Delay < 0 {
		return fmt.Errorf("%w: negative animation delay", ErrInvalidInput)
	}
	return nil
}

// DefaultAnimation returns the animation new sections start with.
func DefaultAnimation() AnimationConfig {
	return AnimationConfig{
		Enabled:  true,
		Type:     AnimationFadeIn,
		Duration: 600,
		Delay:    0,
		Easing:   "easeOutQuad",
		Trigger:  TriggerScroll,
	}
}

// DefaultSectionStyles returns the styles new sections start with.
func DefaultSectionStyles() SectionStyles {
	return SectionStyles{
		BackgroundColor: "#FFFFFF",
		TextColor:       "#1A1A1A",
		Padding:         "4rem 2rem",
	}
}

// Section is one discrete portfolio content block.
type Section struct {
	// ID is unique and stable for the lifetime of the section.
	ID string `json:"id"`

	// Type is immutable after creation.
	Type SectionType `json:"type"`

	// Title is the label shown in the builder.
	Title string `json:"title"`

	// Content is shaped by Type (see DefaultContent).
	Content map[string]any `json:"content"`

	Styles     SectionStyles   `json:"styles"`
	Animations AnimationConfig `json:"animations"`

	// Order is the render position, contiguous from zero.
	Order int `json:"order"`

	// Visible toggles rendering without removing the section.
	Visible bool `json:"visible"`
}

// NewSection builds a section of the given type with type-derived defaults.
func NewSection(id string, t SectionType) Section {
	return Section{
		ID:         id,
		Type:       t,
		Title:      t.DefaultTitle(),
		Content:    DefaultContent(t),
		Styles:     DefaultSectionStyles(),
		Animations: DefaultAnimation(),
		Visible:    true,
	}
}

// Clone returns a deep, independent copy of the section.
func (s Section) Clone() Section {
	s.Content = CloneContent(s.Content)
	return s
}

// Heading returns the content heading, falling back to the title.
func (s Section) Heading() string {
	if h, ok := s.Content["heading"].(string); ok && h != "" {
		return h
	}
	return s.Title
}

// SectionPatch carries the fields an update merges into a section.
// Nil fields are left untouched.
type SectionPatch struct {
	// Type may only repeat the section's existing type.
	Type       *SectionType    `json:"type,omitempty"`
	Title      *string         `json:"title,omitempty"`
	Content    map[string]any  `json:"content,omitempty"`
	Styles     *SectionStyles  `json:"styles,omitempty"`
	Animations *AnimationPatch `json:"animations,omitempty"`
	Visible    *bool           `json:"visible,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p SectionPatch) IsEmpty() bool {
	return p.Type == nil && p.Title == nil && len(p.Content) == 0 &&
		p.Styles == nil && p.Animations == nil && p.Visible == nil
}

// Apply merges the patch into s and returns the result.
// Content keys in the patch overwrite existing keys; other keys are kept.
func (p SectionPatch) Apply(s Section) (Section, error) {
	if p.Type != nil && *p.Type != s.Type {
		return s, fmt.Errorf("%w: section type is immutable (%s -> %s)", ErrInvalidInput, s.Type, *p.Type)
	}
	if p.Animations != nil {
		if err := p.Animations.Validate(); err != nil {
			return s, err
		}
	}

	out := s.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if len(p.Content) > 0 {
		if out.Content == nil {
			out.Content = make(map[string]any, len(p.Content))
		}
		for k, v := range CloneContent(p.Content) {
			out.Content[k] = v
		}
	}
	if p.Styles != nil {
		out.Styles = out.Styles.Merge(*p.Styles)
	}
	if p.Animations != nil {
		out.Animations = p.Animations.Apply(out.Animations)
	}
	if p.Visible != nil {
		out.Visible = *p.Visible
	}
	return out, nil
}
