package services

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// allowedSchemes are the URL schemes that survive SanitizeURL.
var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

// SanitizeURL returns raw if it is an http, https or mailto URL, or a
// relative reference. Anything else (javascript:, data:, unparsable input)
// yields "".
func SanitizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	if u.Scheme == "" {
		if u.Opaque != "" {
			return ""
		}
		return s
	}
	if !allowedSchemes[strings.ToLower(u.Scheme)] {
		return ""
	}
	return u.String()
}

// SanitizeHTML escapes s for inclusion in HTML text.
func SanitizeHTML(s string) string {
	return html.EscapeString(s)
}

// cssBlocked are fragments that never appear in emitted style values.
var cssBlocked = []string{"url(", "expression(", "@import", "javascript:"}

// SanitizeCSSValue returns v if it is safe as a single CSS declaration
// value, otherwise "".
func SanitizeCSSValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.ContainsAny(v, ";{}<>\"\\") {
		return ""
	}
	return blockCSS(v)
}

// SanitizeCSSDeclarations returns decls if it is a safe list of
// "prop: value" declarations, otherwise "".
func SanitizeCSSDeclarations(decls string) string {
	decls = strings.TrimSpace(decls)
	if strings.ContainsAny(decls, "{}<>\\") {
		return ""
	}
	return blockCSS(decls)
}

func blockCSS(v string) string {
	lower := strings.ToLower(v)
	for _, b := range cssBlocked {
		if strings.Contains(lower, b) {
			return ""
		}
	}
	return v
}

// SanitizeFontName strips characters that could escape a quoted CSS
// font-family name.
func SanitizeFontName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\'', '"', ';', '{', '}', '<', '>', '\\', '\n', '\r':
			return -1
		}
		return r
	}, strings.TrimSpace(name))
}
