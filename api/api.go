// Package api exposes record CRUD operations over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jacentio/roster/store"
)

// Handler serves the record API backed by any store implementation.
type Handler struct {
	store  store.Store
	logger *slog.Logger
}

// NewHandler creates an API handler. A nil logger falls back to
// slog.Default.
func NewHandler(s store.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  s,
		logger: logger,
	}
}

// Router builds the chi router for the record API.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/records", func(r chi.Router) {
		r.Post("/", h.createRecord)
		r.Get("/", h.listRecords)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", h.getRecord)
			r.Put("/", h.updateRecord)
			r.Delete("/", h.deleteRecord)
		})
	})

	return r
}

// recordRequest is the JSON body accepted by create and update.
type recordRequest struct {
	Name   string    `json:"name"`
	Age    int       `json:"age"`
	Scores []float64 `json:"scores"`
}

// recordResponse is the JSON representation of a record, with the derived
// average included.
type recordResponse struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Age     int       `json:"age"`
	Scores  []float64 `json:"scores"`
	Average float64   `json:"average"`
}

// errResponse is the JSON error body.
type errResponse struct {
	Error string `json:"error"`
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := h.store.Create(r.Context(), req.Name, req.Age, req.Scores)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.logger.Info("record created", "name", rec.Name, "id", rec.ID)
	h.writeJSON(w, http.StatusCreated, toResponse(rec))
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.List(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	out := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toResponse(rec))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Find(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toResponse(rec))
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	name := chi.URLParam(r, "name")
	rec, err := h.store.Update(r.Context(), name, req.Age, req.Scores)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.logger.Info("record updated", "name", rec.Name, "version", rec.Version)
	h.writeJSON(w, http.StatusOK, toResponse(rec))
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.store.Delete(r.Context(), name); err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.logger.Info("record deleted", "name", name)
	w.WriteHeader(http.StatusNoContent)
}

// writeStoreError maps store errors to HTTP status codes.
func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.writeError(w, http.StatusNotFound, err)
	case store.IsValidation(err):
		h.writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, store.ErrConcurrentModification):
		h.writeError(w, http.StatusConflict, err)
	default:
		h.logger.Error("store operation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, errResponse{Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func toResponse(rec *store.Record) recordResponse {
	return recordResponse{
		ID:      rec.ID,
		Name:    rec.Name,
		Age:     rec.Age,
		Scores:  rec.Scores,
		Average: rec.Average(),
	}
}
