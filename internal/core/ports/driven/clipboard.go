package driven

// Clipboard provides access to the system clipboard.
type Clipboard interface {
	// WriteText replaces the clipboard contents.
	WriteText(text string) error

	// ReadText returns the clipboard contents.
	ReadText() (string, error)
}
