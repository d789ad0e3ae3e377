// Package handler exposes the provisioning REST surface.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hss-gateway/internal/spml"
	"hss-gateway/internal/subscriber/models"
	"hss-gateway/internal/subscriber/service"
	dErrors "hss-gateway/pkg/domain-errors"
)

// Service is the provisioning surface the handler depends on.
type Service interface {
	Create(ctx context.Context, phone *models.DigitalPhone) (*models.DigitalPhoneResponse, error)
	Delete(ctx context.Context, phone *models.DigitalPhone) error
	Lookup(ctx context.Context, q service.LookupQuery) (*spml.Subscriber, error)
}

// Handler serves the digital phone endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New returns a Handler over the given service.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register mounts the digital phone routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/digital-phones", func(r chi.Router) {
		r.Post("/", h.create)
		r.Delete("/", h.delete)
		r.Get("/", h.lookup)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var phone models.DigitalPhone
	if err := json.NewDecoder(r.Body).Decode(&phone); err != nil {
		h.writeError(r.Context(), w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	resp, err := h.service.Create(r.Context(), &phone)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	h.writeJSON(r.Context(), w, http.StatusCreated, resp)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	var phone models.DigitalPhone
	if err := json.NewDecoder(r.Body).Decode(&phone); err != nil {
		h.writeError(r.Context(), w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.service.Delete(r.Context(), &phone); err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) {
	q := service.LookupQuery{
		TelephoneNumber: r.URL.Query().Get("telephone-number"),
		ControllerID:    r.URL.Query().Get("controller-id"),
		PrivateIdentity: r.URL.Query().Get("private-identity"),
		Site:            r.URL.Query().Get("site"),
	}

	sub, err := h.service.Lookup(r.Context(), q)
	if err != nil {
		h.writeError(r.Context(), w, err)
		return
	}
	h.writeJSON(r.Context(), w, http.StatusOK, toLookupResponse(sub))
}

func (h *Handler) writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := dErrors.ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "request failed", "error", err)
	} else {
		h.logger.WarnContext(ctx, "request rejected", "error", err)
	}
	h.writeJSON(ctx, w, status, models.ErrorResponse{
		Status:  strconv.Itoa(status),
		Message: err.Error(),
	})
}
