package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTransactionIDPropagatesHeader(t *testing.T) {
	var seen string
	h := TransactionID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetTransactionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/digital-phones", nil)
	req.Header.Set(TransactionIDHeader, "0b767cdf-ec4a-403f-9c41-e71b703532a3")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if seen != "0b767cdf-ec4a-403f-9c41-e71b703532a3" {
		t.Errorf("transaction id not propagated, got %q", seen)
	}
	if got := rr.Header().Get(TransactionIDHeader); got != seen {
		t.Errorf("response header mismatch, got %q", got)
	}
}

func TestTransactionIDGeneratedWhenAbsent(t *testing.T) {
	var seen string
	h := TransactionID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetTransactionID(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/digital-phones", nil))

	if seen == "" {
		t.Error("expected a generated transaction id")
	}
}

func TestRecoveryReturns500(t *testing.T) {
	h := Recovery(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
}

func TestLoggerPassesThrough(t *testing.T) {
	h := Logger(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusTeapot {
		t.Errorf("middleware altered status, got %d", rr.Code)
	}
}
