package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// PricingTier is one purchasable package of a catalog: a pack count at a
// price, with optional presentation extras. Tiers are value objects; they
// live inside the owning catalog row as an ordered JSON array and tier 0 is
// the default selection on the public order page.
type PricingTier struct {
	Packs        int    `json:"packs"`
	Price        int64  `json:"price"`
	Description  string `json:"description,omitempty"`
	Image        string `json:"image,omitempty"`
	FreeDelivery bool   `json:"free_delivery,omitempty"`
	// Discount is a display label only, never a computed amount.
	Discount string `json:"discount,omitempty"`
}

// Catalog is a merchant-defined sellable product: a name, one main image,
// one to three pricing tiers, and once published a shareable public
// ordering link.
type Catalog struct {
	ID          snowflake.ID                         `gorm:"primaryKey" json:"id"`
	StoreID     snowflake.ID                         `gorm:"column:store_id;not null;index:idx_catalogs_store" json:"store_id"`
	AgentID     snowflake.ID                         `gorm:"column:agent_id;not null" json:"agent_id"`
	Name        string                               `gorm:"not null" json:"name"`
	Description string                               `json:"description,omitempty"`
	MainImage   string                               `gorm:"column:main_image" json:"main_image,omitempty"`
	Tiers       datatypes.JSONSlice[PricingTier]     `gorm:"column:pricing_tiers;type:jsonb" json:"pricing_tiers"`
	IsPublic    bool                                 `gorm:"column:is_public;not null;default:false" json:"is_public"`
	// ShareableLink stays empty until publication and is never cleared by
	// ordinary edits afterwards.
	ShareableLink string `gorm:"column:shareable_link;not null;default:''" json:"shareable_link"`
	// PublishedHandle is the store handle captured at the moment of
	// publication. Later handle changes do not re-point existing links.
	PublishedHandle string    `gorm:"column:published_handle;not null;default:''" json:"published_handle,omitempty"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Catalog) TableName() string { return "catalogs" }
