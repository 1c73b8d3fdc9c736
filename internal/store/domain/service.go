package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	GetByHandle(ctx context.Context, handle string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
}

type CreateRequest struct {
	Name       string `json:"name"`
	Currency   string `json:"currency"`
	OwnerName  string `json:"owner_name"`
	OwnerPhone string `json:"owner_phone"`
}

type UpdateRequest struct {
	ID         string  `json:"id"`
	Name       *string `json:"name"`
	OwnerName  *string `json:"owner_name"`
	OwnerPhone *string `json:"owner_phone"`

	// RegenerateHandle recomputes the handle from the (possibly new) name.
	// Published shareable links keep the handle captured at publication, so
	// this never rewrites existing links.
	RegenerateHandle bool `json:"regenerate_handle"`
}

type Response struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Handle     string    `json:"handle"`
	Currency   string    `json:"currency"`
	OwnerName  string    `json:"owner_name,omitempty"`
	OwnerPhone string    `json:"owner_phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

var (
	ErrInvalidName   = errors.New("invalid_store_name")
	ErrInvalidID     = errors.New("invalid_store_id")
	ErrInvalidHandle = errors.New("invalid_store_handle")
	ErrHandleTaken   = errors.New("store_handle_taken")
	ErrNotFound      = errors.New("store_not_found")
)
