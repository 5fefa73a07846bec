package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/gocart/storefront/pkg/db/models"
)

// LoginRequest captures the admin credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminSummary is the admin as exposed over the API.
type AdminSummary struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

func summarize(admin *models.Admin) *AdminSummary {
	if admin == nil {
		return nil
	}
	return &AdminSummary{ID: admin.ID, Email: admin.Email, Name: admin.Name}
}

// LoginResult carries the signed token for the cookie plus the admin profile.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *AdminSummary
}

// Principal is an authenticated admin session.
type Principal struct {
	Admin *AdminSummary
	JTI   string
}
