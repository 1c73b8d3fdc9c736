package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Store is a merchant storefront. Its handle is the owner segment of every
// shareable catalog link published under it.
type Store struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	Name       string       `gorm:"not null" json:"name"`
	Handle     string       `gorm:"not null;uniqueIndex:ux_stores_handle" json:"handle"`
	Currency   string       `gorm:"not null;default:NGN" json:"currency"`
	OwnerName  string       `json:"owner_name,omitempty"`
	OwnerPhone string       `json:"owner_phone,omitempty"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Store) TableName() string { return "stores" }
