package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gocart/storefront/pkg/config"
	"github.com/gocart/storefront/pkg/enums"
)

func testAdminConfig() config.AdminJWTConfig {
	return config.AdminJWTConfig{Secret: "admin-secret", Issuer: "gocart-admin", TTL: 24 * time.Hour}
}

func TestMintAndParseAdminToken(t *testing.T) {
	cfg := testAdminConfig()
	now := time.Now().UTC()
	adminID := uuid.New()

	token, minted, err := MintAdminToken(cfg, now, AdminTokenPayload{AdminID: adminID, Email: "admin@gocart.com"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if minted.ID == "" {
		t.Fatal("expected generated jti")
	}

	claims, err := ParseAdminToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.AdminID != adminID || claims.Email != "admin@gocart.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.ID != minted.ID {
		t.Fatalf("jti mismatch: %s vs %s", claims.ID, minted.ID)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 24*time.Hour {
		t.Fatalf("expected 24h lifetime, got %s", got)
	}
}

func TestParseAdminTokenRejectsExpired(t *testing.T) {
	cfg := testAdminConfig()
	token, _, err := MintAdminToken(cfg, time.Now().Add(-48*time.Hour), AdminTokenPayload{AdminID: uuid.New()})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseAdminToken(cfg, token); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired error, got %v", err)
	}
}

func TestParseAdminTokenRejectsWrongSecretAndIssuer(t *testing.T) {
	cfg := testAdminConfig()
	token, _, err := MintAdminToken(cfg, time.Now(), AdminTokenPayload{AdminID: uuid.New()})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	wrongSecret := cfg
	wrongSecret.Secret = "other"
	if _, err := ParseAdminToken(wrongSecret, token); err == nil {
		t.Fatal("expected signature failure")
	}

	wrongIssuer := cfg
	wrongIssuer.Issuer = "someone-else"
	if _, err := ParseAdminToken(wrongIssuer, token); !errors.Is(err, jwt.ErrTokenInvalidIssuer) {
		t.Fatalf("expected issuer failure, got %v", err)
	}
}

func TestMintAdminTokenValidatesConfig(t *testing.T) {
	if _, _, err := MintAdminToken(config.AdminJWTConfig{}, time.Now(), AdminTokenPayload{AdminID: uuid.New()}); err == nil {
		t.Fatal("expected missing secret error")
	}
	if _, _, err := MintAdminToken(testAdminConfig(), time.Now(), AdminTokenPayload{}); err == nil {
		t.Fatal("expected missing admin id error")
	}
}

func TestIdentityTokenRoundTrip(t *testing.T) {
	cfg := config.IdentityConfig{Secret: "identity-secret", Issuer: "https://id.example.com"}
	claims := IdentityClaims{
		Email:    "jane@example.com",
		Username: "jane",
		Metadata: IdentityMetadata{Role: "admin"},
	}
	claims.Subject = "user_123"

	token, err := MintIdentityToken(cfg, time.Now(), time.Hour, claims)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	parsed, err := ParseIdentityToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.UserID() != "user_123" {
		t.Fatalf("unexpected subject %q", parsed.UserID())
	}
	if parsed.Role() != enums.UserRoleAdmin {
		t.Fatalf("unexpected role %q", parsed.Role())
	}
	if parsed.DisplayName() != "jane" {
		t.Fatalf("expected username fallback, got %q", parsed.DisplayName())
	}
}

func TestIdentityClaimsDefaults(t *testing.T) {
	var claims *IdentityClaims
	if claims.Role() != enums.UserRoleBuyer {
		t.Fatal("nil claims should default to buyer")
	}
	if (&IdentityClaims{}).DisplayName() != "User" {
		t.Fatal("empty claims should fall back to User")
	}
}
