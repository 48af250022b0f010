package handlers

import (
	"animecat/internal/models"
	"animecat/internal/services"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
)

type errorBody struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: apiError{Code: code, Message: message}})
}

// writeServiceError maps client and caller-layer failures onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, log *logrus.Logger, err error) {
	var (
		httpErr      *services.HTTPError
		transportErr *services.TransportError
		parseErr     *services.ParseError
	)

	switch {
	case errors.Is(err, services.ErrInvalidID),
		errors.Is(err, services.ErrEmptyQuery),
		errors.Is(err, models.ErrInvalidFilter):
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
	case errors.Is(err, services.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests, try again later")
	case errors.As(err, &httpErr):
		switch httpErr.StatusCode {
		case http.StatusNotFound:
			writeError(w, http.StatusNotFound, "NOT_FOUND", "anime not found")
		case http.StatusTooManyRequests:
			writeError(w, http.StatusTooManyRequests, "UPSTREAM_RATE_LIMITED", "upstream rate limit reached")
		default:
			log.WithError(err).Error("Upstream returned an error")
			writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
		}
	case errors.As(err, &transportErr):
		log.WithError(err).Error("Upstream unreachable")
		writeError(w, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "upstream unavailable")
	case errors.As(err, &parseErr):
		log.WithError(err).Error("Upstream sent an unexpected response")
		writeError(w, http.StatusBadGateway, "UPSTREAM_BAD_RESPONSE", "unexpected upstream response")
	default:
		log.WithError(err).Error("Unhandled error")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}
