// Package httpapi exposes contact submissions over JSON HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/csheth/webmodels/internal/contact"
	"github.com/google/uuid"
)

const maxRequestBytes = 64 << 10

// Service is the subset of contact.Service the handlers need.
type Service interface {
	Submit(ctx context.Context, form contact.Form) (*contact.Submission, error)
	Get(ctx context.Context, id uuid.UUID) (*contact.Submission, error)
	List(ctx context.Context, opts contact.ListOptions) ([]contact.Submission, error)
	SetStatus(ctx context.Context, id uuid.UUID, status contact.Status) (*contact.Submission, error)
}

type Handler struct {
	service Service
	mux     *http.ServeMux
}

func New(service Service) *Handler {
	h := &Handler{service: service, mux: http.NewServeMux()}
	h.mux.HandleFunc("POST /api/contact", h.handleCreate)
	h.mux.HandleFunc("GET /api/contact", h.handleList)
	h.mux.HandleFunc("GET /api/contact/{id}", h.handleGet)
	h.mux.HandleFunc("PATCH /api/contact/{id}", h.handleSetStatus)
	h.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type errorBody struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

type statusBody struct {
	Status string `json:"status"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var form contact.Form
	if !decode(w, r, &form) {
		return
	}
	sub, err := h.service.Submit(r.Context(), form)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var opts contact.ListOptions
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := contact.ParseStatus(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		opts.Status = status
	}
	subs, err := h.service.List(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if subs == nil {
		subs = []contact.Submission{}
	}
	writeJSON(w, http.StatusOK, subs)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	sub, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body statusBody
	if !decode(w, r, &body) {
		return
	}
	status, err := contact.ParseStatus(body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	sub, err := h.service.SetStatus(r.Context(), id, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid submission id"})
		return uuid.Nil, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "request body too large"})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json: " + err.Error()})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Error(), Missing: verr.Missing})
	case errors.Is(err, contact.ErrInvalid):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, contact.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	default:
		log.Printf("[httpapi] internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[httpapi] encode response: %v", err)
	}
}
