package controllers

import (
	"net/http"
	"time"

	"github.com/gocart/storefront/api/middleware"
	"github.com/gocart/storefront/api/responses"
	"github.com/gocart/storefront/api/validators"
	"github.com/gocart/storefront/internal/auth"
	"github.com/gocart/storefront/pkg/enums"
	pkgerrors "github.com/gocart/storefront/pkg/errors"
	"github.com/gocart/storefront/pkg/logger"
)

// AdminCookie describes how the admin session cookie is written.
type AdminCookie struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

func (c AdminCookie) issue(token string) *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c AdminCookie) clear() *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c AdminCookie) read(r *http.Request) string {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// AdminLogin verifies admin credentials and sets the session cookie.
func AdminLogin(svc auth.Service, cookie AdminCookie, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, cookie.issue(result.Token))
		if logg != nil {
			logg.Info(logg.WithAdminID(r.Context(), result.Admin.ID.String()), "admin.login")
		}
		responses.WriteSuccess(w, map[string]any{"admin": result.Admin})
	}
}

// AdminLogout revokes the session and clears the cookie. It succeeds even
// when the cookie is already gone.
func AdminLogout(svc auth.Service, cookie AdminCookie, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), cookie.read(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		http.SetCookie(w, cookie.clear())
		responses.WriteSuccess(w, map[string]any{"message": "Logged out successfully"})
	}
}

// AdminAuthCheck reports whether the admin cookie carries a live session.
func AdminAuthCheck(svc auth.Service, cookie AdminCookie, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := svc.Authenticate(r.Context(), cookie.read(r))
		if err != nil {
			if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccessStatus(w, http.StatusUnauthorized, map[string]any{"isAdmin": false})
			return
		}
		responses.WriteSuccess(w, map[string]any{"isAdmin": true, "admin": principal.Admin})
	}
}

// AdminRoleCheck reports the identity-provider role of a signed-in buyer or
// seller. It is unrelated to the admin cookie.
func AdminRoleCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := middleware.IdentityFromContext(r.Context()).Role()
		responses.WriteSuccess(w, map[string]any{
			"isAdmin": role == enums.UserRoleAdmin,
			"role":    role,
		})
	}
}
