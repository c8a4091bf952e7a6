package middleware

import (
	"net/http"
	"strings"

	"todos-backend/pkg/auth"
	"todos-backend/pkg/common"
	pkgerrors "todos-backend/pkg/errors"

	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"go.uber.org/zap"
)

// IdentityResolver extracts the caller's user id from a request.
// An empty id with a nil error means the caller is anonymous.
type IdentityResolver func(r *http.Request) (string, error)

// GatewayIdentity reads the Cognito identity id from the API Gateway request context
func GatewayIdentity() IdentityResolver {
	return func(r *http.Request) (string, error) {
		gatewayCtx, ok := core.GetAPIGatewayContextFromContext(r.Context())
		if !ok {
			return "", nil
		}
		return gatewayCtx.Identity.CognitoIdentityID, nil
	}
}

// HeaderIdentity trusts the X-User-ID header. Meant for local development.
func HeaderIdentity() IdentityResolver {
	return func(r *http.Request) (string, error) {
		return strings.TrimSpace(r.Header.Get("X-User-ID")), nil
	}
}

// JWTIdentity validates a bearer token and uses its subject
func JWTIdentity(validator *auth.JWTValidator) IdentityResolver {
	return func(r *http.Request) (string, error) {
		header := r.Header.Get("Authorization")
		if header == "" {
			return "", nil
		}

		claims, err := validator.ValidateToken(header)
		if err != nil {
			return "", err
		}
		return claims.UserID(), nil
	}
}

// Identity resolves the caller and stores it in the request context.
// Without an identity the request runs as common.AnonymousUserID, unless required is set.
func Identity(resolve IdentityResolver, required bool, errorHandler *pkgerrors.ErrorHandler, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := resolve(r)
			if err != nil {
				logger.Debug("Rejected credentials", zap.Error(err))
				errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("invalid credentials").WithCause(err))
				return
			}

			if userID == "" {
				if required {
					errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("missing credentials"))
					return
				}
				userID = common.AnonymousUserID
			}

			next.ServeHTTP(w, r.WithContext(common.WithUserID(r.Context(), userID)))
		})
	}
}
