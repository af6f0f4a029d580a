package middleware

import "net/http"

// MaxBodySize covers a hackathon form with a cover image.
const MaxBodySize int64 = 5 << 20

// RequestSize limits request bodies to maxBytes.
func RequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
