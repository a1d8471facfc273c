package domain

import (
	"encoding/json"
	"fmt"
)

// Project is one entry of a projects section.
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	DemoURL     string   `json:"demoUrl,omitempty"`
	GithubURL   string   `json:"githubUrl,omitempty"`
}

// Skill is one entry of a skills section. Level is 0-100.
type Skill struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category,omitempty"`
}

// Experience is one entry of an experience section.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description,omitempty"`
}

// Education is one entry of an education section.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Period      string `json:"period"`
	Description string `json:"description,omitempty"`
}

// SocialLink is a contact section profile link.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Testimonial is one quote of a testimonials section.
type Testimonial struct {
	Author string `json:"author"`
	Role   string `json:"role,omitempty"`
	Quote  string `json:"quote"`
}

// DefaultContent returns the starting content for a section type.
// Values are JSON-shaped so they compare equal after a persistence round trip.
func DefaultContent(t SectionType) map[string]any {
	switch t {
	case SectionHero:
		return map[string]any{
			"heading":    "Welcome to My Portfolio",
			"subheading": "Creating Amazing Digital Experiences",
			"ctaText":    "View My Work",
			"ctaLink":    "#projects",
		}
	case SectionAbout:
		return map[string]any{
			"heading": "About Me",
			"text":    "I am a passionate developer creating impactful digital solutions.",
			"image":   "resources/professional-headshot.jpg",
		}
	case SectionProjects:
		return map[string]any{"heading": "My Projects", "projects": []any{}}
	case SectionSkills:
		return map[string]any{"heading": "Skills & Expertise", "skills": []any{}}
	case SectionExperience:
		return map[string]any{"heading": "Work Experience", "entries": []any{}}
	case SectionEducation:
		return map[string]any{"heading": "Education", "entries": []any{}}
	case SectionContact:
		return map[string]any{
			"heading":    "Get In Touch",
			"subheading": "Ready to collaborate on your next project",
			"email":      "hello@example.com",
			"phone":      "",
			"social":     []any{},
		}
	case SectionTestimonials:
		return map[string]any{"heading": "Testimonials", "quotes": []any{}}
	default:
		return map[string]any{"heading": "", "body": ""}
	}
}

// CloneContent deep-copies a content map.
func CloneContent(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return CloneContent(val)
	case []any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = cloneValue(val[i])
		}
		return out
	case []string:
		return append([]string(nil), val...)
	case []map[string]any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = CloneContent(val[i])
		}
		return out
	default:
		return val
	}
}

// NormalizeContent converts arbitrary Go values into their JSON shape
// (maps of any, []any, float64 numbers) so in-memory state matches what
// persistence and share links reproduce.
func NormalizeContent(m map[string]any) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%w: content is not serialisable: %v", ErrInvalidInput, err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: content is not serialisable: %v", ErrInvalidInput, err)
	}
	return out, nil
}

// ContentString reads a string field from content.
func ContentString(content map[string]any, key string) string {
	s, _ := content[key].(string)
	return s
}

// ContentItems decodes a list field of content into typed items.
// Malformed entries yield an error; a missing key yields nil.
func ContentItems[T any](content map[string]any, key string) ([]T, error) {
	raw, ok := content[key]
	if !ok || raw == nil {
		return nil, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", key, err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidInput, key, err)
	}
	return items, nil
}
