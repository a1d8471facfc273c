package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

const (
	// uriScheme prefixes every folio resource URI.
	uriScheme = "folio://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "portfolio",
		Name:        "portfolio",
		Description: "The portfolio as persisted JSON (sections, customization, version)",
		MIMEType:    "application/json",
	}, s.handlePortfolioResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "portfolio.html",
		Name:        "portfolio-html",
		Description: "The portfolio rendered as a standalone HTML document",
		MIMEType:    "text/html",
	}, s.handlePortfolioHTMLResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Undo history labels with the current position",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "templates/{templateId}",
		Name:        "template",
		Description: "A portfolio template with its sections and customization",
		MIMEType:    "application/json",
	}, s.handleTemplateResource)
}

// handlePortfolioResource returns the persisted form of the current state.
func (s *Server) handlePortfolioResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	portfolio := domain.NewPersistedPortfolio(s.ports.Builder.State(), s.now())
	return jsonResource(req.Params.URI, portfolio)
}

// handlePortfolioHTMLResource returns the rendered HTML document.
func (s *Server) handlePortfolioHTMLResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Export == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	page, err := s.ports.Export.RenderHTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("rendering portfolio: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/html",
			Text:     string(page),
		}},
	}, nil
}

// handleHistoryResource returns the history labels and cursor.
func (s *Server) handleHistoryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type entryInfo struct {
		Index     int    `json:"index"`
		Action    string `json:"action"`
		Timestamp string `json:"timestamp"`
	}

	history := s.ports.Builder.History()
	entries := make([]entryInfo, len(history.Entries))
	for i, e := range history.Entries {
		entries[i] = entryInfo{
			Index:     i,
			Action:    e.Action,
			Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
		}
	}

	return jsonResource(req.Params.URI, map[string]any{
		"entries":  entries,
		"cursor":   history.Cursor,
		"can_undo": history.CanUndo(),
		"can_redo": history.CanRedo(),
	})
}

// handleTemplateResource returns one template.
func (s *Server) handleTemplateResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Templates == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract templateId from URI: folio://templates/{templateId}
	templateID := extractTemplateID(req.Params.URI)
	if templateID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	tpl, err := s.ports.Templates.Get(ctx, templateID)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, tpl)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractTemplateID extracts the template ID from a URI like folio://templates/{templateId}.
func extractTemplateID(uri string) string {
	const prefix = uriScheme + "templates/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
