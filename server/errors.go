package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rcoplo/osu-api-go/osu"
)

type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps a client error onto the gateway's answer.
func statusFor(err error) int {
	switch osu.Classify(err) {
	case osu.KindNoData:
		return http.StatusNotFound
	case osu.KindMalformed:
		return http.StatusBadGateway
	case osu.KindTransport:
		var apiErr *osu.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("Upstream request failed")
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
