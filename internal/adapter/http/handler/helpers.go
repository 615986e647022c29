package handler

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"net/http"

	t "github.com/Temutjin2k/taxi-fare-dashboard/internal/domain/types"
)

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return errors.New("failed to encode json")
	}

	js = append(js, '\n')

	maps.Copy(w.Header(), headers)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

// GetCode maps a pipeline error to the HTTP status returned to the client.
// Cancellation wins over the query service failure it caused.
func GetCode(err error) int {
	switch {
	case IsOneOf(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case IsOneOf(err, context.Canceled):
		return http.StatusServiceUnavailable
	case IsOneOf(err, t.ErrUnknownChart, t.ErrNoChartData):
		return http.StatusNotFound
	case IsOneOf(err, t.ErrMalformedResponse, t.ErrCoercion, t.ErrQueryService, t.ErrStatementFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func IsOneOf(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
