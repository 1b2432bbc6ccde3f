package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/justinkworkman/FastChart/internal/chart"
	"github.com/justinkworkman/FastChart/internal/render"
	"github.com/justinkworkman/FastChart/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Renderer produces the HTML sections for a report layout.
type Renderer interface {
	RenderAll(ctx context.Context, data []map[string]any, layout chart.Layout, palette []string) ([]string, error)
}

// Handler wires the report renderer and palette storage into HTTP handlers.
type Handler struct {
	renderer Renderer
	storage  storage.Storage

	clock func() time.Time

	mu               sync.RWMutex
	paletteUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(renderer Renderer, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		renderer: renderer,
		storage:  store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.paletteUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	palette, err := h.storage.GetPalette()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	sections, err := h.renderer.RenderAll(r.Context(), req.Data, req.Layout, palette)
	if err != nil {
		switch {
		case isLayoutError(err):
			writeError(w, http.StatusBadRequest, "Invalid layout", err.Error())
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusServiceUnavailable, "Request aborted", err.Error())
		default:
			writeInternalError(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(render.Report(sections)))
}

func (h *Handler) handleGetPalette(w http.ResponseWriter, r *http.Request) {
	_ = r
	palette, err := h.storage.GetPalette()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := paletteResponse{
		Palette:   palette,
		UpdatedAt: h.currentPaletteUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutPalette(w http.ResponseWriter, r *http.Request) {
	var req paletteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if len(req.Palette) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid palette", "palette must contain at least one color")
		return
	}

	if err := h.storage.SetPalette(req.Palette); err != nil {
		if errors.Is(err, storage.ErrInvalidPalette) {
			writeError(w, http.StatusBadRequest, "Invalid palette", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markPaletteUpdated()

	palette, err := h.storage.GetPalette()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := paletteResponse{
		Palette:   palette,
		UpdatedAt: h.currentPaletteUpdatedAt(),
		Message:   "Palette updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func isLayoutError(err error) bool {
	return errors.Is(err, chart.ErrNoCharts) ||
		errors.Is(err, chart.ErrUnknownType) ||
		errors.Is(err, chart.ErrUnknownCalculation) ||
		errors.Is(err, chart.ErrMissingField) ||
		errors.Is(err, chart.ErrMissingValueField)
}

func (h *Handler) currentPaletteUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.paletteUpdatedAt
}

func (h *Handler) markPaletteUpdated() {
	h.mu.Lock()
	h.paletteUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type generateRequest struct {
	Data   []map[string]any `json:"data"`
	Layout chart.Layout     `json:"layout"`
}

type paletteRequest struct {
	Palette []string `json:"palette"`
}

type paletteResponse struct {
	Palette   []string  `json:"palette"`
	UpdatedAt time.Time `json:"updatedAt"`
	Message   string    `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
