package driven

// MarkdownRenderer converts Markdown source to an HTML fragment.
// Raw HTML in the source must not be passed through.
type MarkdownRenderer interface {
	Render(source string) (string, error)
}
