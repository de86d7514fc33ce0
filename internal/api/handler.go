package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/eugenenazirov/knapsack/internal/solver"
	"github.com/eugenenazirov/knapsack/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires solver and catalog dependencies into HTTP handlers.
type Handler struct {
	solver  solver.Solver
	catalog storage.Catalog
	metrics *metrics

	clock func() time.Time

	mu             sync.RWMutex
	itemsUpdatedAt time.Time
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
func NewHandler(s solver.Solver, catalog storage.Catalog, opts ...HandlerOption) *Handler {
	h := &Handler{
		solver:  s,
		catalog: catalog,
		metrics: newMetrics(),
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.itemsUpdatedAt = h.clock()
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

func (h *Handler) handleGetItems(w http.ResponseWriter, r *http.Request) {
	_ = r
	items, err := h.catalog.Items()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := itemsResponse{
		Items:     items,
		UpdatedAt: h.currentItemsUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutItems(w http.ResponseWriter, r *http.Request) {
	var req itemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if req.Items == nil {
		writeError(w, http.StatusBadRequest, "Invalid items", "items must be present (use [] to clear the catalog)")
		return
	}

	if err := h.catalog.SetItems(req.Items); err != nil {
		if errors.Is(err, storage.ErrInvalidItems) {
			writeError(w, http.StatusBadRequest, "Invalid items", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markItemsUpdated()

	items, err := h.catalog.Items()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := itemsResponse{
		Items:     items,
		UpdatedAt: h.currentItemsUpdatedAt(),
		Message:   "Items updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if req.Capacity == nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "capacity is required")
		return
	}

	items := req.Items
	if items == nil {
		catalogItems, err := h.catalog.Items()
		if err != nil {
			writeInternalError(w, err)
			return
		}
		items = catalogItems
	}

	start := time.Now()
	result, solveErr := h.solver.Solve(items, *req.Capacity)
	elapsed := time.Since(start)
	h.metrics.observe(solveErr, elapsed)

	if solveErr != nil {
		switch {
		case errors.Is(solveErr, solver.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "Invalid request", solveErr.Error())
		case errors.Is(solveErr, solver.ErrProblemTooLarge):
			suggestion := fmt.Sprintf("Reduce the capacity (%d) or the number of items (%d)", *req.Capacity, len(items))
			writeError(w, http.StatusUnprocessableEntity, "Problem too large", solveErr.Error(), suggestion)
		default:
			writeInternalError(w, solveErr)
		}
		return
	}

	resp := solveResponse{
		Capacity:          *req.Capacity,
		Chosen:            result.Chosen,
		TotalValue:        result.TotalValue,
		TotalCost:         result.TotalCost,
		CalculationTimeMs: elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) currentItemsUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.itemsUpdatedAt
}

func (h *Handler) markItemsUpdated() {
	h.mu.Lock()
	h.itemsUpdatedAt = h.clock()
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

type itemsRequest struct {
	Items []solver.Item `json:"items"`
}

type solveRequest struct {
	Capacity *int          `json:"capacity"`
	Items    []solver.Item `json:"items,omitempty"`
}

type solveResponse struct {
	Capacity          int   `json:"capacity"`
	Chosen            []int `json:"chosen"`
	TotalValue        int   `json:"totalValue"`
	TotalCost         int   `json:"totalCost"`
	CalculationTimeMs int64 `json:"calculationTimeMs"`
}

type itemsResponse struct {
	Items     []solver.Item `json:"items"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Message   string        `json:"message,omitempty"`
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
