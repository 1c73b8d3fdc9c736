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
}

type CreateRequest struct {
	Name    string `json:"name"`
	Channel string `json:"channel"`
}

type Response struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	Name      string    `json:"name"`
	Channel   string    `json:"channel,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrInvalidStore = errors.New("invalid_store")
	ErrInvalidName  = errors.New("invalid_agent_name")
	ErrInvalidID    = errors.New("invalid_agent_id")
	ErrNotFound     = errors.New("agent_not_found")
)
