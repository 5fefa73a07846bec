package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/gocart/storefront/pkg/enums"
)

// Store is a seller storefront. It stays inactive until an admin approves it.
type Store struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      string            `gorm:"column:user_id;type:text;not null;uniqueIndex" json:"userId"`
	Name        string            `gorm:"column:name;not null" json:"name"`
	Description string            `gorm:"column:description;not null" json:"description"`
	Username    string            `gorm:"column:username;not null;uniqueIndex" json:"username"`
	Address     string            `gorm:"column:address;not null" json:"address"`
	Status      enums.StoreStatus `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`
	IsActive    bool              `gorm:"column:is_active;not null;default:false" json:"isActive"`
	Logo        string            `gorm:"column:logo;not null;default:''" json:"logo"`
	Email       string            `gorm:"column:email;not null" json:"email"`
	Contact     string            `gorm:"column:contact;not null" json:"contact"`
	User        *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
