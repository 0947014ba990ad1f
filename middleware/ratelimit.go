package middleware

import (
	"net"
	"net/http"
	"strconv"

	authguard "github.com/authguard/authguard"
)

// KeyFunc derives the limiter key for a request. Returning "" rejects the
// request without consuming an attempt.
type KeyFunc func(r *http.Request) string

func RateLimit(guard *authguard.Guard, keyFunc KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if guard == nil || keyFunc == nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}

			key := keyFunc(r)
			if key == "" {
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}

			allowed, err := guard.CanAttempt(r.Context(), key)
			if err != nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}
			if !allowed {
				report := guard.SecurityReport()
				if secs := int(report.Window.Seconds()); secs > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(secs))
				}
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP keys admission by the client address, ignoring the port.
func RateLimitByIP(guard *authguard.Guard) func(http.Handler) http.Handler {
	return RateLimit(guard, ClientIP)
}

// ClientIP extracts the remote host from the request, dropping the port.
// It does not trust forwarding headers; deployments behind a proxy should
// supply their own KeyFunc.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
