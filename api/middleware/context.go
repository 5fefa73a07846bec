package middleware

import (
	"context"

	"github.com/gocart/storefront/internal/auth"
	pkgauth "github.com/gocart/storefront/pkg/auth"
)

type contextKey string

const (
	ctxIdentity contextKey = "identity"
	ctxAdmin    contextKey = "admin"
)

// WithIdentity stores the verified identity-provider claims on ctx.
func WithIdentity(ctx context.Context, claims *pkgauth.IdentityClaims) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, claims)
}

// IdentityFromContext returns the caller's claims, or nil outside the identity guard.
func IdentityFromContext(ctx context.Context) *pkgauth.IdentityClaims {
	if ctx == nil {
		return nil
	}
	claims, _ := ctx.Value(ctxIdentity).(*pkgauth.IdentityClaims)
	return claims
}

func UserIDFromContext(ctx context.Context) string {
	if claims := IdentityFromContext(ctx); claims != nil {
		return claims.UserID()
	}
	return ""
}

// WithAdmin stores the authenticated admin session on ctx.
func WithAdmin(ctx context.Context, principal *auth.Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAdmin, principal)
}

func AdminFromContext(ctx context.Context) *auth.Principal {
	if ctx == nil {
		return nil
	}
	principal, _ := ctx.Value(ctxAdmin).(*auth.Principal)
	return principal
}
