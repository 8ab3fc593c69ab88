package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"partshop/internal/auth"
	"partshop/internal/middleware"
	"partshop/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// okResponse acknowledges deletes and logout.
type okResponse struct {
	OK bool `json:"ok"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful left to tell the client
		return
	}
}

// statusFor maps a domain error code to its HTTP status.
func statusFor(code string) int {
	switch code {
	case model.ErrCodeInvalidJSON,
		model.ErrCodeValidationFailed,
		model.ErrCodeEmptyOrder,
		model.ErrCodeInvalidQuantity,
		model.ErrCodeInvalidPrice,
		model.ErrCodeInvalidStatus,
		model.ErrCodeNoFieldsToUpdate,
		model.ErrCodeEmptyCart:
		return http.StatusBadRequest
	case model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeUnknownReference, model.ErrCodeDuplicate, model.ErrCodeInvalidStatusTransition:
		return http.StatusConflict
	case model.ErrCodeOrderTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status and writes the standard error body.
// Internal errors are logged and their details withheld from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	resp := model.ErrorResponse{
		Error:         model.ErrCodeInternalError,
		Message:       "internal server error",
		CorrelationID: middleware.GetRequestID(r.Context()),
	}

	var de *model.DomainError
	if errors.As(err, &de) {
		resp.Error = de.Code
		resp.Message = de.Message
	}
	status := statusFor(resp.Error)

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Ctx(r.Context()).
		Err(err).
		Str("code", resp.Error).
		Int("status", status).
		Str("correlation_id", resp.CorrelationID).
		Msg("handler error")

	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "1")
	}
	writeJSON(w, status, resp)
}

// decodeJSON reads the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "invalid request body")
	}
	return nil
}

// pathID parses the named chi URL parameter as a positive id.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewValidationError("invalid " + name)
	}
	return id, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewValidationError(name + " must be a number")
	}
	return n, nil
}

// principal returns the authenticated principal. Routes using it sit behind
// Authenticate, so a missing principal is an unauthorised request.
func principal(r *http.Request) (model.Principal, error) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		return model.Principal{}, model.NewDomainError(model.ErrCodeUnauthorised, "authentication required")
	}
	return p, nil
}

// customerScope resolves the customerId path parameter and checks the caller may act on it.
func customerScope(r *http.Request, param string) (int64, error) {
	p, err := principal(r)
	if err != nil {
		return 0, err
	}
	customerID, err := pathID(r, param)
	if err != nil {
		return 0, err
	}
	if !p.CanAccessCustomer(customerID) {
		return 0, model.ErrForbidden
	}
	return customerID, nil
}
