package api

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

// writeDomainError переводит доменную ошибку в HTTP-статус:
// invalid argument — 400, not found — 404, state conflict — 409, остальное — 500.
func writeDomainError(w http.ResponseWriter, logger *log.Entry, err error) {
	switch {
	case domain.IsInvalidArgument(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case domain.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case domain.IsStateConflict(err):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		if logger != nil {
			logger.WithError(err).Error("internal error while handling request")
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}
