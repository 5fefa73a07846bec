package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gocart/storefront/pkg/config"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// MintAdminToken signs the admin session JWT. A jti is generated when the payload
// does not carry one.
func MintAdminToken(cfg config.AdminJWTConfig, now time.Time, payload AdminTokenPayload) (string, *AdminTokenClaims, error) {
	if cfg.Secret == "" {
		return "", nil, fmt.Errorf("admin jwt secret is required")
	}
	if cfg.Issuer == "" {
		return "", nil, fmt.Errorf("admin jwt issuer is required")
	}
	if cfg.TTL <= 0 {
		return "", nil, fmt.Errorf("admin jwt ttl must be positive")
	}
	if payload.AdminID == uuid.Nil {
		return "", nil, fmt.Errorf("admin id is required")
	}

	jti := strings.TrimSpace(payload.JTI)
	if jti == "" {
		jti = uuid.NewString()
	}

	claims := &AdminTokenClaims{
		AdminID: payload.AdminID,
		Email:   payload.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   payload.AdminID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
			ID:        jti,
		},
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", nil, fmt.Errorf("signing admin jwt: %w", err)
	}
	return signed, claims, nil
}

// ParseAdminToken validates signature, expiry and issuer.
func ParseAdminToken(cfg config.AdminJWTConfig, tokenString string) (*AdminTokenClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("admin jwt secret is required")
	}

	claims := &AdminTokenClaims{}
	if err := parseHS256(tokenString, claims, cfg.Secret, cfg.Issuer); err != nil {
		return nil, err
	}
	if claims.AdminID == uuid.Nil || claims.ID == "" {
		return nil, fmt.Errorf("admin token missing admin_id or jti")
	}
	return claims, nil
}

// MintIdentityToken signs a token shaped like the identity provider's. It backs
// local tooling and tests; production tokens come from the provider.
func MintIdentityToken(cfg config.IdentityConfig, now time.Time, ttl time.Duration, claims IdentityClaims) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("identity jwt secret is required")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("identity subject is required")
	}
	claims.Issuer = cfg.Issuer
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	signed, err := jwt.NewWithClaims(jwtSigningMethod, &claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing identity jwt: %w", err)
	}
	return signed, nil
}

// ParseIdentityToken verifies a bearer token from the identity provider.
func ParseIdentityToken(cfg config.IdentityConfig, tokenString string) (*IdentityClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("identity jwt secret is required")
	}

	claims := &IdentityClaims{}
	if err := parseHS256(tokenString, claims, cfg.Secret, cfg.Issuer); err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("identity token missing subject")
	}
	return claims, nil
}

func parseHS256(tokenString string, claims jwt.Claims, secret, issuer string) error {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(secret), nil
		},
		opts...,
	)
	return err
}
