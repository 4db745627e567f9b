package middleware

import (
	"net/http"
	"strings"
)

const (
	allowedMethods  = "GET, POST, PATCH, PUT, DELETE, OPTIONS"
	allowedHeaders  = "Authorization, Content-Type, Accept"
	preflightMaxAge = "86400"
)

// CORS lets browsers on an allowed origin call the API. Preflight OPTIONS
// requests are answered directly with 204 and never reach the next handler.
// Origins are matched exactly after trimming whitespace and a trailing slash.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowed := normalizeOrigins(allowedOrigins)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Add("Vary", "Origin")

		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; ok {
			header.Set("Access-Control-Allow-Origin", origin)
			header.Set("Access-Control-Allow-Credentials", "true")
			if r.Method == http.MethodOptions {
				header.Set("Access-Control-Allow-Methods", allowedMethods)
				header.Set("Access-Control-Allow-Headers", allowedHeaders)
				header.Set("Access-Control-Max-Age", preflightMaxAge)
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func normalizeOrigins(origins []string) map[string]struct{} {
	set := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o != "" {
			set[o] = struct{}{}
		}
	}
	return set
}
