package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/khanabid1694/sj-server/internal/notify"
	"github.com/khanabid1694/sj-server/internal/order"
	"github.com/khanabid1694/sj-server/internal/product"
)

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, product.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, product.ErrMissingFields),
		errors.Is(err, product.ErrNoImage),
		errors.Is(err, order.ErrInvalidOrder):
		return http.StatusBadRequest
	case errors.Is(err, notify.ErrNotificationFailed):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
