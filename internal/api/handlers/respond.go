package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/providervault/ai-service/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message, kind string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
		"kind":  kind,
	})
}

// respondWithAppError maps the error taxonomy onto HTTP statuses. The
// raw model text on malformed-response errors is logged, never echoed.
func respondWithAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		log.Error().Err(err).Msg("unclassified handler error")
		respondWithError(w, http.StatusInternalServerError, "internal server error", string(apperrors.ErrorTypeInternal))
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		status = http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrorTypeDataUnavailable, apperrors.ErrorTypeUpstreamUnavailable:
		status = http.StatusServiceUnavailable
	case apperrors.ErrorTypeUpstreamRejected, apperrors.ErrorTypeMalformedResponse:
		status = http.StatusBadGateway
	}

	if appErr.Type == apperrors.ErrorTypeMalformedResponse {
		log.Error().Str("raw", appErr.Raw).Msg(appErr.Message)
	} else if status >= 500 {
		log.Error().Err(appErr).Msg("request failed")
	}

	respondWithError(w, status, appErr.Message, string(appErr.Type))
}

// decodeJSON reads a request body into dst, rejecting syntactically
// invalid payloads before any service work happens.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid JSON body")
	}
	return nil
}
