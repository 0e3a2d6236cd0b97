package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/wherehaus/addressbook/pkg/errors"
	"github.com/wherehaus/addressbook/pkg/logger"
	"github.com/wherehaus/addressbook/pkg/validator"
)

// Response is the uniform JSON envelope applied to every response body,
// success and error alike.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

const (
	// StatusSuccess marks a successful response envelope.
	StatusSuccess = "success"
	// StatusError marks an error response envelope.
	StatusError = "error"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a success envelope with the given status code, message, and data.
func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Response{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	})
}

// WriteError writes an error envelope based on the error type. AppError values
// carry their own status and message; sentinel errors are mapped through
// apperrors.HTTPStatus; everything else surfaces as a 500. Internal errors are
// logged with the request-scoped logger when one is present in context.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	status := apperrors.HTTPStatus(err)
	message := "an unexpected error occurred"

	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		status = appErr.Status
		message = appErr.Message
	case errors.Is(err, apperrors.ErrNotFound):
		message = "resource not found"
	case errors.Is(err, apperrors.ErrValidation):
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, Response{
		Status:  StatusError,
		Message: message,
	})
}

// WriteValidationError writes an error envelope for a request validation
// failure. Field-level messages from the validator are included in data.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusUnprocessableEntity, Response{
			Status:  StatusError,
			Message: "request validation failed",
			Data:    map[string]any{"fields": valErr.Fields()},
		})
		return
	}

	WriteJSON(w, http.StatusUnprocessableEntity, Response{
		Status:  StatusError,
		Message: err.Error(),
	})
}
