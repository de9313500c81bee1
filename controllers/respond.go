package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"go-shopcart/apierr"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a service error onto the response. Typed API errors keep
// their status code and message; anything else becomes an opaque 500.
func writeError(w http.ResponseWriter, log zerolog.Logger, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.StatusCode, apiErr)
		return
	}
	log.Error().Err(err).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, apierr.Internal("Internal Server Error"))
}
