package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type errorLoggerFunc func(string, ...any)

func (f errorLoggerFunc) Error(msg string, v ...any) { f(msg, v...) }

func TestRecover(t *testing.T) {
	var logged []any
	l := errorLoggerFunc(func(msg string, v ...any) {
		logged = append(logged, msg)
		logged = append(logged, v...)
	})

	h := Recover(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	}))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error": "service_error", "message": "Internal server error"}`, w.Body.String())
	require.NotContains(t, w.Body.String(), "something went wrong", "panic details must not leak")
	require.Equal(t, []any{"panic while serving request", "path", "/boom", "reason", "something went wrong"}, logged)
}

func TestRecover_NoPanic(t *testing.T) {
	h := Recover(errorLoggerFunc(func(string, ...any) {
		t.Fatal("nothing should be logged")
	}))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
}
