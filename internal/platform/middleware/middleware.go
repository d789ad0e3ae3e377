package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// TransactionIDHeader carries the caller's correlation id end to end.
const TransactionIDHeader = "transaction-id"

type contextKeyTransactionID struct{}

// ContextKeyTransactionID is exported for use in handlers.
var ContextKeyTransactionID = contextKeyTransactionID{}

// GetTransactionID retrieves the transaction id from the context.
func GetTransactionID(ctx context.Context) string {
	txID, ok := ctx.Value(ContextKeyTransactionID).(string)
	if !ok {
		return ""
	}
	return txID
}

// TransactionID propagates the transaction-id header into the request
// context, generating one when the caller did not supply it.
func TransactionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		txID := r.Header.Get(TransactionIDHeader)
		if txID == "" {
			txID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), ContextKeyTransactionID, txID)
		w.Header().Set(TransactionIDHeader, txID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Recovery converts panics into 500 responses instead of dropped connections.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "panic recovered",
						"panic", rec,
						"path", r.URL.Path,
						"transaction_id", GetTransactionID(r.Context()),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"status":"500","message":"internal server error"}`))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logger emits one structured line per request.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.InfoContext(r.Context(), "request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"transaction_id", GetTransactionID(r.Context()),
			)
		})
	}
}
