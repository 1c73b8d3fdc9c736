package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)

	AddTier(ctx context.Context, id string) (*Response, error)
	RemoveTier(ctx context.Context, id string, index int) (*Response, error)
	UpdateTierField(ctx context.Context, req UpdateTierFieldRequest) (*Response, error)

	AttachImage(ctx context.Context, req AttachImageRequest) (*Response, error)

	Publish(ctx context.Context, req PublishRequest) (*PublishResponse, error)

	// GetPublic resolves the customer-facing view behind a shareable link.
	// The handle must match the owning store unless lookup is by ID alone
	// (the legacy /order/{id} form).
	GetPublic(ctx context.Context, handle, id string) (*PublicView, error)
	GetPublicByID(ctx context.Context, id string) (*PublicView, error)
}

type CreateRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	AgentID     string        `json:"agent_id"`
	MainImage   string        `json:"main_image"`
	Tiers       []PricingTier `json:"pricing_tiers"`
}

type UpdateRequest struct {
	ID          string         `json:"id"`
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	AgentID     *string        `json:"agent_id"`
	MainImage   *string        `json:"main_image"`
	Tiers       *[]PricingTier `json:"pricing_tiers"`
	IsPublic    *bool          `json:"is_public"`
}

type UpdateTierFieldRequest struct {
	ID    string    `json:"id"`
	Index int       `json:"index"`
	Field TierField `json:"field"`
	Value string    `json:"value"`
}

type AttachImageRequest struct {
	ID string
	// TierIndex selects a tier image; nil targets the catalog main image.
	TierIndex   *int
	Data        []byte
	ContentType string
}

type PublishRequest struct {
	ID string `json:"id"`
	// Origin overrides the configured public origin, carrying the origin
	// the console page was actually served from.
	Origin string `json:"origin"`
}

type Response struct {
	ID            string        `json:"id"`
	StoreID       string        `json:"store_id"`
	AgentID       string        `json:"agent_id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	MainImage     string        `json:"main_image,omitempty"`
	PricingTiers  []PricingTier `json:"pricing_tiers"`
	IsPublic      bool          `json:"is_public"`
	ShareableLink string        `json:"shareable_link"`
	State         State         `json:"state"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// PublishResponse reports a publish outcome. LinkPersisted false with a
// non-empty link is the degraded-success case: the catalog row exists but
// the link write failed, so the caller shows the derived link best-effort
// and may retry.
type PublishResponse struct {
	Catalog       Response `json:"catalog"`
	ShareableLink string   `json:"shareable_link"`
	LinkPersisted bool     `json:"link_persisted"`
	Message       string   `json:"message,omitempty"`
}

// PublicView is the customer-facing projection served behind a shareable
// link. It carries the references an order submission needs and nothing
// about the merchant console.
type PublicView struct {
	CatalogID    string        `json:"catalog_id"`
	StoreID      string        `json:"store_id"`
	AgentID      string        `json:"agent_id"`
	StoreName    string        `json:"store_name"`
	StoreHandle  string        `json:"store_handle"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	MainImage    string        `json:"main_image,omitempty"`
	PricingTiers []PricingTier `json:"pricing_tiers"`
	Currency     string        `json:"currency"`
}

var (
	ErrInvalidStore   = errors.New("invalid_store")
	ErrInvalidID      = errors.New("invalid_catalog_id")
	ErrInvalidName    = errors.New("invalid_catalog_name")
	ErrInvalidAgent   = errors.New("invalid_catalog_agent")
	ErrNotFound       = errors.New("catalog_not_found")
	ErrNotPublic      = errors.New("catalog_not_public")
	ErrHandleMismatch = errors.New("catalog_handle_mismatch")
)
