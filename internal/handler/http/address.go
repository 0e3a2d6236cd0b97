package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wherehaus/addressbook/internal/service"
	apperrors "github.com/wherehaus/addressbook/pkg/errors"
	"github.com/wherehaus/addressbook/pkg/httputil"
	"github.com/wherehaus/addressbook/pkg/validator"
)

// AddressHandler handles HTTP requests for address endpoints.
type AddressHandler struct {
	service *service.AddressService
	logger  *slog.Logger
}

// NewAddressHandler creates a new address HTTP handler.
func NewAddressHandler(svc *service.AddressService, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{service: svc, logger: logger}
}

// --- Request DTOs ---

// CreateAddressRequest is the JSON request body for creating an address.
// Coordinates are pointers so that a present zero value passes "required".
type CreateAddressRequest struct {
	Label     string   `json:"label" validate:"omitempty,max=100"`
	Street    string   `json:"street" validate:"required,min=1,max=500"`
	City      string   `json:"city" validate:"omitempty,max=100"`
	State     string   `json:"state" validate:"omitempty,max=100"`
	Country   string   `json:"country" validate:"omitempty,max=100"`
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

// UpdateAddressRequest is the JSON request body for updating an address.
// Omitted fields leave the stored values unchanged.
type UpdateAddressRequest struct {
	Label     *string  `json:"label" validate:"omitempty,max=100"`
	Street    *string  `json:"street" validate:"omitempty,min=1,max=500"`
	City      *string  `json:"city" validate:"omitempty,max=100"`
	State     *string  `json:"state" validate:"omitempty,max=100"`
	Country   *string  `json:"country" validate:"omitempty,max=100"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// --- Handlers ---

// Create handles POST /addresses
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAddressRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.CreateAddressInput{
		Label:     req.Label,
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		Country:   req.Country,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	}

	address, err := h.service.Create(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "address created", address)
}

// Get handles GET /addresses/{id}
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	address, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "address found", address)
}

// Update handles PUT /addresses/{id}
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateAddressRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.UpdateAddressInput{
		Label:     req.Label,
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		Country:   req.Country,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	address, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "address updated", address)
}

// Delete handles DELETE /addresses/{id}
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FindNearby handles GET /addresses/near?lat=&lon=&radius_km=
func (h *AddressHandler) FindNearby(w http.ResponseWriter, r *http.Request) {
	lat, err := parseFloatParam(r, "lat")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	lon, err := parseFloatParam(r, "lon")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	radiusKm, err := parseFloatParam(r, "radius_km")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	nearby, err := h.service.FindNearby(r.Context(), lat, lon, radiusKm)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "addresses within distance", map[string]any{
		"addresses": nearby,
	})
}

func parseFloatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, apperrors.Validation("missing required query parameter '" + name + "'")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.Validation("query parameter '" + name + "' must be a number")
	}
	return v, nil
}
