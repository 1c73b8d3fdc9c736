package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	// Submit records a customer order from a public catalog page. It is
	// unauthenticated; the store is resolved from the catalog.
	Submit(ctx context.Context, req SubmitRequest) (*Response, error)

	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Response, error)
}

type SubmitRequest struct {
	CatalogID       string `json:"catalog_id"`
	SelectedTier    int    `json:"selected_tier"`
	Quantity        int    `json:"quantity"`
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerEmail   string `json:"customer_email"`
	CustomerAddress string `json:"customer_address"`
	Notes           string `json:"notes"`

	// IdempotencyKey comes from the Idempotency-Key header, not the body.
	IdempotencyKey string `json:"-"`
}

type Response struct {
	ID            string      `json:"id"`
	StoreID       string      `json:"store_id"`
	CatalogID     string      `json:"catalog_id"`
	AgentID       string      `json:"agent_id"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	CustomerEmail string      `json:"customer_email,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	Items         []OrderItem `json:"items"`
	SelectedTier  int         `json:"selected_tier"`
	Quantity      int         `json:"quantity"`
	TotalAmount   int64       `json:"total_amount"`
	DisplayTotal  string      `json:"display_total"`
	Status        Status      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

var (
	ErrInvalidStore          = errors.New("invalid_store")
	ErrInvalidID             = errors.New("invalid_order_id")
	ErrNotFound              = errors.New("order_not_found")
	ErrCatalogNotFound       = errors.New("order_catalog_not_found")
	ErrCustomerNameRequired  = errors.New("customer_name_required")
	ErrCustomerPhoneRequired = errors.New("customer_phone_required")
	ErrDuplicateSubmit       = errors.New("duplicate_submit")
	ErrInvalidStatus         = errors.New("invalid_order_status")
)
