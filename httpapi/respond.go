package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"salespoint/models"

	log "github.com/sirupsen/logrus"
)

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	if err := enc.Encode(v); err != nil {
		log.WithError(err).Warn("Failed to encode response")
	}
}

// statusFor maps domain errors onto HTTP statuses
func statusFor(err error) int {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnknownTeam):
		return http.StatusNotFound
	case errors.Is(err, models.ErrReadOnlyDay):
		return http.StatusConflict
	case errors.Is(err, models.ErrAIUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, models.ErrNoDataReturned):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := errorBody{Error: err.Error()}

	var verr *models.ValidationError
	if errors.As(err, &verr) {
		body.Field = verr.Field
	}
	if status == http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"path":  r.URL.Path,
			"rid":   RID(r.Context()),
			"error": err,
		}).Error("Request failed")
		body.Error = "internal error"
	}
	writeJSON(w, status, body)
}

func badRequest(w http.ResponseWriter, field, reason string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: reason, Field: field})
}
