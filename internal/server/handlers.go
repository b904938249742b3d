package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"GoLex/internal/token"
)

// Handler holds the HTTP handlers for the GoLex API.
type Handler struct {
	mgr    *Manager
	logger *slog.Logger
}

// NewHandler creates a Handler backed by the given Manager.
func NewHandler(mgr *Manager, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{mgr: mgr, logger: logger}
}

// RegisterRoutes registers all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Scanner lifecycle.
	mux.HandleFunc("GET /scanners", h.handleListScanners)
	mux.HandleFunc("POST /scanners", h.handleCreateScanner)
	mux.HandleFunc("GET /scanners/{name}", h.handleGetScanner)
	mux.HandleFunc("DELETE /scanners/{name}", h.handleDeleteScanner)

	// Tokenization.
	mux.HandleFunc("POST /scanners/{name}/tokenize", h.handleTokenize)
}

func (h *Handler) handleListScanners(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"scanners": h.mgr.List(),
	})
}

func (h *Handler) handleCreateScanner(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string     `json:"name"`
		Types []TypeDecl `json:"types"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "scanner name is required")
		return
	}

	if err := h.mgr.Create(req.Name, req.Types); err != nil {
		if errors.Is(err, ErrScannerExists) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"name": req.Name,
	})
}

func (h *Handler) handleGetScanner(w http.ResponseWriter, r *http.Request) {
	inst, err := h.mgr.Get(r.PathValue("name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":  inst.Name,
		"types": inst.Decls,
	})
}

func (h *Handler) handleDeleteScanner(w http.ResponseWriter, r *http.Request) {
	if err := h.mgr.Delete(r.PathValue("name")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "deleted",
	})
}

// tokenJSON is the wire form of one scanned token.
type tokenJSON struct {
	Type   string `json:"type"`
	Lexeme string `json:"lexeme"`
	Value  any    `json:"value,omitempty"`
	Index  int    `json:"index"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Error  bool   `json:"error,omitempty"`
	EOF    bool   `json:"eof,omitempty"`
}

func (h *Handler) handleTokenize(w http.ResponseWriter, r *http.Request) {
	inst, err := h.mgr.Get(r.PathValue("name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxTokenizeSize))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	toks, err := inst.Tokenize(string(body))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	out := make([]tokenJSON, len(toks))
	errorCount := 0
	for i, tok := range toks {
		out[i] = renderToken(inst, tok)
		if out[i].Error {
			errorCount++
		}
	}
	h.logger.Info("tokenized",
		"scanner", inst.Name,
		"bytes", len(body),
		"tokens", len(toks),
		"errors", errorCount,
	)

	writeJSON(w, http.StatusOK, map[string]any{
		"tokens": out,
	})
}

func renderToken(inst *Instance, tok token.Token) tokenJSON {
	return tokenJSON{
		Type:   tok.Type.Name(),
		Lexeme: tok.Lexeme,
		Value:  tok.Value,
		Index:  tok.Position.Index,
		Line:   tok.Position.Line,
		Column: tok.Position.Column,
		Error:  tok.Type == inst.scanner.ErrorType(),
		EOF:    tok.Type == inst.scanner.EOFType(),
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"message": message,
		},
	})
}
