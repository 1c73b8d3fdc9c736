package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// OrderItem is one line of a submitted order. Name carries the pack count
// and catalog name the way the confirmation message renders it.
type OrderItem struct {
	Name     string `json:"name"`
	Packs    int    `json:"packs"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image,omitempty"`
}

type Status string

const (
	StatusReceived   Status = "received"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

type Order struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	StoreID   snowflake.ID `gorm:"column:store_id;not null;index:idx_orders_store" json:"store_id"`
	CatalogID snowflake.ID `gorm:"column:catalog_id;not null" json:"catalog_id"`
	AgentID   snowflake.ID `gorm:"column:agent_id;not null" json:"agent_id"`

	CustomerName    string `gorm:"column:customer_name;not null" json:"customer_name"`
	CustomerPhone   string `gorm:"column:customer_phone;not null" json:"customer_phone"`
	CustomerEmail   string `gorm:"column:customer_email;not null;default:''" json:"customer_email,omitempty"`
	CustomerAddress string `gorm:"column:customer_address;not null;default:''" json:"customer_address,omitempty"`
	Notes           string `gorm:"column:notes;not null;default:''" json:"notes,omitempty"`

	Items        datatypes.JSONSlice[OrderItem] `gorm:"column:items;type:jsonb" json:"items"`
	SelectedTier int                            `gorm:"column:selected_tier;not null" json:"selected_tier"`
	Quantity     int                            `gorm:"column:quantity;not null" json:"quantity"`
	TotalAmount  int64                          `gorm:"column:total_amount;not null" json:"total_amount"`

	Status    Status    `gorm:"column:status;not null;default:'received'" json:"status"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }
