package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gocart/storefront/pkg/enums"
)

// AdminTokenPayload is the data encoded into the admin_token cookie.
type AdminTokenPayload struct {
	AdminID uuid.UUID
	Email   string
	JTI     string
}

// AdminTokenClaims is the typed admin JWT.
type AdminTokenClaims struct {
	AdminID uuid.UUID `json:"admin_id"`
	Email   string    `json:"email"`
	jwt.RegisteredClaims
}

// IdentityMetadata carries the public metadata the identity provider attaches.
type IdentityMetadata struct {
	Role string `json:"role,omitempty"`
}

// IdentityClaims is the bearer token issued by the external identity provider.
// The subject is the user id.
type IdentityClaims struct {
	Email    string           `json:"email,omitempty"`
	Name     string           `json:"name,omitempty"`
	Username string           `json:"username,omitempty"`
	Picture  string           `json:"picture,omitempty"`
	Metadata IdentityMetadata `json:"metadata,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the provider subject.
func (c *IdentityClaims) UserID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}

// Role resolves metadata.role, defaulting to buyer.
func (c *IdentityClaims) Role() enums.UserRole {
	if c == nil {
		return enums.UserRoleBuyer
	}
	return enums.ParseUserRole(c.Metadata.Role)
}

// DisplayName falls back from name to username to email, then "User".
func (c *IdentityClaims) DisplayName() string {
	if c == nil {
		return "User"
	}
	for _, candidate := range []string{c.Name, c.Username, c.Email} {
		if v := strings.TrimSpace(candidate); v != "" {
			return v
		}
	}
	return "User"
}
