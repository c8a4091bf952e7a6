package middleware

import (
	"net/http"

	"todos-backend/pkg/auth"
	"todos-backend/pkg/common"
	pkgerrors "todos-backend/pkg/errors"

	"go.uber.org/zap"
)

// RateLimit rejects callers exceeding their per-minute budget.
// It must run after Identity so that anonymous callers share one budget.
func RateLimit(limiter *auth.UserRateLimiter, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := common.UserIDOrAnonymous(r.Context())

			allowed, err := limiter.Allow(r.Context(), userID)
			if err != nil {
				logger.Error("Rate limiter failed", zap.String("userID", userID), zap.Error(err))
			}
			if err == nil && !allowed {
				errorHandler.Handle(w, r, pkgerrors.NewRateLimitError(limiter.Limit(), "minute"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
