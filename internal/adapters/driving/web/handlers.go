package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// maxDispatchBody caps the JSON arguments accepted by /api/dispatch.
const maxDispatchBody = 1 << 20

// handlePortfolio GET / and /portfolio.html
//
// A ?data= query carries a share link payload. It is loaded into the
// builder and the browser is redirected to the clean URL.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if data := r.URL.Query().Get("data"); data != "" {
		if s.ports.Share == nil {
			writeError(w, http.StatusNotImplemented, "share links are not enabled")
			return
		}
		if err := s.ports.Share.Load(r.Context(), data); err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
		return
	}

	page, err := s.ports.Export.RenderHTML(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeHTML(w, page)
}

// handlePreview GET /preview and /preview/{device}
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	device := s.ports.DefaultDevice
	if name, ok := mux.Vars(r)["device"]; ok {
		parsed, err := domain.ParseDevice(name)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		device = parsed
	}

	page, err := s.ports.Export.RenderPreview(r.Context(), device)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeHTML(w, page)
}

// handleHealth GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sections": len(s.ports.Builder.Sections()),
		"dirty":    s.ports.Builder.Dirty(),
	})
}

// handleExportJSON GET /api/portfolio
func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := s.ports.Export.ExportJSON(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Debug("writing response: %v", err)
	}
}

// historyItem is one history entry without its snapshot.
type historyItem struct {
	Index   int    `json:"index"`
	Action  string `json:"action"`
	Time    string `json:"timestamp"`
	Current bool   `json:"current"`
}

// handleHistory GET /api/history
func (s *Server) handleHistory(w http.ResponseWriter, _ *http.Request) {
	h := s.ports.Builder.History()
	items := make([]historyItem, 0, len(h.Entries))
	for i, e := range h.Entries {
		items = append(items, historyItem{
			Index:   i,
			Action:  e.Action,
			Time:    e.Timestamp.UTC().Format(time.RFC3339),
			Current: i == h.Cursor,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": items,
		"cursor":  h.Cursor,
		"canUndo": h.CanUndo(),
		"canRedo": h.CanRedo(),
	})
}

// handleSections GET /api/sections
func (s *Server) handleSections(w http.ResponseWriter, _ *http.Request) {
	sections := s.ports.Builder.Sections()
	if sections == nil {
		sections = []domain.Section{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sections": sections,
		"count":    len(sections),
		"selected": s.ports.Builder.Selected(),
	})
}

// handleDispatch POST /api/dispatch/{action}
func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	if s.ports.Dispatcher == nil {
		writeError(w, http.StatusNotImplemented, "dispatch is not enabled")
		return
	}
	action := domain.Action(mux.Vars(r)["action"])

	body, err := io.ReadAll(io.LimitReader(r.Body, maxDispatchBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	cmd, err := domain.DecodeCommand(action, body)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	res, err := s.ports.Dispatcher.Dispatch(r.Context(), cmd)
	if err != nil {
		writeJSON(w, statusFor(err), res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var syntaxErr *json.SyntaxError
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUnsupportedType):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidShareLink),
		errors.Is(err, domain.ErrIndexOutOfRange),
		errors.As(err, &syntaxErr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNothingToUndo), errors.Is(err, domain.ErrNothingToRedo),
		errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
