package services

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure ActionService implements the interface.
var _ driving.ActionService = (*ActionService)(nil)

// ActionService performs desktop side effects: clipboard writes and opening
// exported files or links in the default application.
type ActionService struct {
	clipboard driven.Clipboard
	open      func(target string) error
}

// NewActionService creates an action service. clipboard may be nil.
func NewActionService(clipboard driven.Clipboard) *ActionService {
	return &ActionService{
		clipboard: clipboard,
		open:      openURL,
	}
}

// CopyToClipboard copies text to the system clipboard.
func (s *ActionService) CopyToClipboard(_ context.Context, text string) error {
	if s.clipboard == nil {
		return fmt.Errorf("clipboard: %w", domain.ErrNotImplemented)
	}
	if err := s.clipboard.WriteText(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// OpenURL opens an http(s) URL or a local file in the default application.
func (s *ActionService) OpenURL(_ context.Context, target string) error {
	resolved, err := openableTarget(target)
	if err != nil {
		return err
	}
	return s.open(resolved)
}

// openableTarget accepts web URLs, file:// URLs and plain paths.
func openableTarget(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", fmt.Errorf("%w: empty target", domain.ErrInvalidInput)
	}
	u, err := url.Parse(target)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return u.String(), nil
		case "file":
			return u.Path, nil
		}
		if len(u.Scheme) > 1 {
			return "", fmt.Errorf("%w: scheme %q", domain.ErrInvalidInput, u.Scheme)
		}
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return abs, nil
}

// openURL opens target using the platform's opener.
func openURL(target string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("open", target)
	case osLinux:
		cmd = exec.Command("xdg-open", target)
	case osWindows:
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
