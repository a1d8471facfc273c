package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/a?b=c", "https://example.com/a?b=c"},
		{"http://example.com", "http://example.com"},
		{"mailto:jane@example.com", "mailto:jane@example.com"},
		{"#projects", "#projects"},
		{"resources/headshot.jpg", "resources/headshot.jpg"},
		{"  https://example.com  ", "https://example.com"},
		{"javascript:alert(1)", ""},
		{"JavaScript:alert(1)", ""},
		{"data:text/html;base64,PHNjcmlwdD4=", ""},
		{"vbscript:msgbox", ""},
		{"", ""},
		{"http://[::1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeURL(tt.in))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;", SanitizeHTML(`<script>alert("x")</script>`))
	assert.Equal(t, "Tom &amp; Jerry", SanitizeHTML("Tom & Jerry"))
}

func TestSanitizeCSSValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#FFFFFF", "#FFFFFF"},
		{"4rem 2rem", "4rem 2rem"},
		{"red; background: url(x)", ""},
		{"url(https://evil.example)", ""},
		{"expression(alert(1))", ""},
		{"</style><script>", ""},
		{`"quoted"`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeCSSValue(tt.in))
		})
	}
}

func TestSanitizeCSSDeclarations(t *testing.T) {
	assert.Equal(t, "border: 1px solid red; opacity: 0.9;", SanitizeCSSDeclarations(" border: 1px solid red; opacity: 0.9; "))
	assert.Empty(t, SanitizeCSSDeclarations("} body { display: none"))
	assert.Empty(t, SanitizeCSSDeclarations("@import 'x.css'"))
	assert.Empty(t, SanitizeCSSDeclarations("background: URL(x)"))
}

func TestSanitizeFontName(t *testing.T) {
	assert.Equal(t, "Sorts Mill Goudy", SanitizeFontName("Sorts Mill Goudy"))
	assert.Equal(t, "Inter bodyevil", SanitizeFontName(`Inter'; body{evil}`))
}
