package models

import (
	"time"

	"github.com/gocart/storefront/pkg/types"
)

// User mirrors an identity-provider account. The id is the provider subject.
type User struct {
	ID        string        `gorm:"column:id;type:text;primaryKey" json:"id"`
	Name      string        `gorm:"column:name;not null" json:"name"`
	Email     string        `gorm:"column:email;not null" json:"email"`
	Image     string        `gorm:"column:image;not null;default:''" json:"image"`
	Cart      types.JSONMap `gorm:"column:cart;type:jsonb;not null;default:'{}'" json:"cart"`
	Store     *Store        `gorm:"foreignKey:UserID" json:"store,omitempty"`
	Addresses []Address     `gorm:"foreignKey:UserID" json:"addresses,omitempty"`
	Orders    []Order       `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
