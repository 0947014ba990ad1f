package middleware

import (
	"net/http"

	authguard "github.com/authguard/authguard"
)

// CleanQuery returns middleware that scrubs every query parameter value
// through Guard.CleanInput before the wrapped handler reads it.
func CleanQuery(guard *authguard.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if guard == nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}

			values := r.URL.Query()
			changed := false
			for key, list := range values {
				for i, v := range list {
					cleaned := guard.CleanInput(v)
					if cleaned != v {
						list[i] = cleaned
						changed = true
					}
				}
				values[key] = list
			}
			if changed {
				r.URL.RawQuery = values.Encode()
			}

			next.ServeHTTP(w, r)
		})
	}
}
