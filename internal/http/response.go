package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type dataResponse struct {
	Data any `json:"data"`
}

func writeJSON(log *slog.Logger, w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(dataResponse{Data: data}); err != nil {
		log.ErrorContext(r.Context(), "error encoding response", slog.Any("error", err))
	}
}
