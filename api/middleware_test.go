package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hospital-portal/api/handlers"
	"hospital-portal/config"
	"hospital-portal/core/utils"
)

func TestRequestIDReplacesOversizedHeader(t *testing.T) {
	s := &Server{}
	var seen string
	h := s.requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = handlers.RequestIDFrom(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/faqs", nil)
	req.Header.Set(handlers.RequestIDHeader, strings.Repeat("x", 200))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if len(seen) != 36 {
		t.Fatalf("expected minted uuid, got %q", seen)
	}
	if got := rr.Header().Get(handlers.RequestIDHeader); got != seen {
		t.Fatalf("expected echoed id %q, got %q", seen, got)
	}
}

func TestRecoverMiddlewareRethrowsAbortHandler(t *testing.T) {
	s := &Server{}
	h := s.recoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Fatalf("expected ErrAbortHandler to propagate, got %v", rec)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestBodyLimitDisabledWhenZero(t *testing.T) {
	s := &Server{cfg: &config.AppConfig{}}
	var n int
	h := s.bodyLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		n = len(b)
	}))
	body := strings.Repeat("a", 1<<16)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/faqs", strings.NewReader(body)))
	if n != len(body) {
		t.Fatalf("expected full body, read %d bytes", n)
	}
}

func TestBodyLimitRejectsLargeBody(t *testing.T) {
	s := &Server{cfg: &config.AppConfig{HTTP: config.HTTPConfig{MaxBodyBytes: 8}}}
	var readErr error
	h := s.bodyLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/faqs", strings.NewReader("0123456789")))
	if readErr == nil {
		t.Fatalf("expected read error past the limit")
	}
}

func TestAccessLogWritesStatusAndUnmatchedRoute(t *testing.T) {
	var buf bytes.Buffer
	logger, err := utils.NewLoggerWith(&buf, "info", "json")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	s := &Server{logger: logger}
	h := s.accessLogMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	line := buf.String()
	for _, want := range []string{`"status":418`, `"route":"unmatched"`, `"level":"warn"`, `"message":"REQ"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %s in access log, got %s", want, line)
		}
	}
}
