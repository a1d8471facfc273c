package driving

import "context"

// ActionService performs desktop side effects for external actors.
// This is used by TUI, CLI, and MCP adapters.
type ActionService interface {
	// CopyToClipboard copies text to the system clipboard.
	CopyToClipboard(ctx context.Context, text string) error

	// OpenURL opens a URL or file path in the default application.
	OpenURL(ctx context.Context, url string) error
}
