package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Agent is the AI assistant that services a store's catalogs and orders.
// Conversation behavior lives in the agent runtime, not here; catalogs only
// need a valid reference before they can be persisted.
type Agent struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	StoreID   snowflake.ID `gorm:"column:store_id;not null;index" json:"store_id"`
	Name      string       `gorm:"not null" json:"name"`
	Channel   string       `json:"channel,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Agent) TableName() string { return "agents" }
