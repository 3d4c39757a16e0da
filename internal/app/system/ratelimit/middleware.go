package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/recoveryhub/internal/app/system/respond"
	"go.uber.org/zap"
)

// Middleware rejects requests over the limit with a 429 envelope. The key
// is the client IP. Limiter errors let the request through.
func Middleware(a Allower, window time.Duration, log *zap.Logger) func(http.Handler) http.Handler {
	retry := strconv.Itoa(int(window.Round(time.Second) / time.Second))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := a.Allow(r.Context(), ClientIP(r))
			if err != nil {
				if log != nil {
					log.Warn("rate limiter failed", zap.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				w.Header().Set("Retry-After", retry)
				respond.JSON(w, http.StatusTooManyRequests, respond.Envelope{
					Status:  respond.StatusError,
					Message: "Too many requests",
					Errors: &respond.ErrorBody{
						Code:        http.StatusTooManyRequests,
						Description: "Rate limit exceeded, retry after " + retry + "s",
					},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
