package middlewares

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// MethodOverrideMiddleware lets HTML forms tunnel PUT/DELETE through POST
// with a hidden _method field.
func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = r.ParseForm()
			override := r.PostForm.Get("_method")
			if override == http.MethodPut || override == http.MethodDelete {
				r.Method = override
			}
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// RequestLoggerMiddleware tags every request with a request id and logs
// method, path, status and duration.
func RequestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(rec, r)

		log.Printf("[%s] %s %s -> %d (%s)", requestID[:8], r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
