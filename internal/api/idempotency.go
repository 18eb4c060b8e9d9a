package api

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/dinepos/internal/domain"
)

const (
	idempotencyKeyHeader    = "Idempotency-Key"
	idempotencyReplayHeader = "Idempotency-Replay"
	idempotencyTTL          = 24 * time.Hour

	maxIdempotentBodyBytes = 1 << 20
)

// responseRecorder копирует статус и тело ответа, продолжая писать клиенту.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(p)
	return r.ResponseWriter.Write(p)
}

// withIdempotency повторно использует сохранённый ответ для запросов
// с тем же Idempotency-Key и тем же телом.
func (s *Server) withIdempotency(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.idem == nil {
			next(w, r)
			return
		}

		idemKey := strings.TrimSpace(r.Header.Get(idempotencyKeyHeader))
		if idemKey == "" {
			next(w, r)
			return
		}

		bodyBytes, err := io.ReadAll(io.LimitReader(r.Body, maxIdempotentBodyBytes))
		if err != nil {
			writeBadRequest(w, "failed to read request body")
			return
		}
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		reqHash := buildIdempotencyRequestHash(r.Method, r.URL.Path, bodyBytes)

		record, err := s.idem.CreateProcessing(idemKey, reqHash, time.Now().UTC().Add(idempotencyTTL))
		if err != nil {
			s.replayIdempotency(w, err, record)
			return
		}

		rec := &responseRecorder{ResponseWriter: w}
		next(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		if status >= 200 && status < 300 {
			if markErr := s.idem.MarkDone(idemKey, rec.body.Bytes(), status); markErr != nil {
				s.logger.WithError(markErr).WithField("idempotency_key", idemKey).Warn("failed to store idempotent success response")
			}
			return
		}
		if markErr := s.idem.MarkFailed(idemKey, rec.body.Bytes(), status); markErr != nil {
			s.logger.WithError(markErr).WithField("idempotency_key", idemKey).Warn("failed to store idempotent failure response")
		}
	}
}

func (s *Server) replayIdempotency(w http.ResponseWriter, createErr error, record domain.IdempotencyRecord) {
	switch {
	case errors.Is(createErr, domain.ErrIdempotencyHashMismatch):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "idempotency key is already used with different request payload"})
	case errors.Is(createErr, domain.ErrIdempotencyKeyAlreadyExists):
		switch record.Status {
		case domain.IdempotencyStatusDone, domain.IdempotencyStatusFailed:
			if len(record.ResponseBody) == 0 || record.HTTPStatus == 0 {
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "idempotency cache is empty"})
				return
			}
			w.Header().Set(idempotencyReplayHeader, "true")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(record.HTTPStatus)
			_, _ = w.Write(record.ResponseBody)
		case domain.IdempotencyStatusProcessing:
			writeJSON(w, http.StatusConflict, errorResponse{Error: "request with the same idempotency key is already processing"})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "unknown idempotency record status"})
		}
	default:
		s.logger.WithError(createErr).Warn("failed to create idempotency record")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to initialize idempotency request"})
	}
}

func buildIdempotencyRequestHash(method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
