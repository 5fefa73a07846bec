package middleware

import (
	"context"
	"net/http"

	"github.com/gocart/storefront/api/responses"
	"github.com/gocart/storefront/internal/auth"
	pkgerrors "github.com/gocart/storefront/pkg/errors"
	"github.com/gocart/storefront/pkg/logger"
)

const adminForbiddenMessage = "Forbidden. Admin access required."

type adminAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Principal, error)
}

// AdminGuard admits requests carrying a live admin cookie and answers 403 otherwise.
func AdminGuard(authn adminAuthenticator, cookieName string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(cookieName); err == nil {
				token = cookie.Value
			}

			principal, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
					responses.WriteError(r.Context(), logg, w, err)
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, adminForbiddenMessage))
				return
			}

			ctx := WithAdmin(r.Context(), principal)
			if logg != nil {
				ctx = logg.WithAdminID(ctx, principal.Admin.ID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
