package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/vocaai/console/internal/store/domain"
	"github.com/vocaai/console/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("store.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	handle := slug.Make(name)
	if handle == "" {
		return nil, domain.ErrInvalidHandle
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "NGN"
	}

	now := time.Now().UTC()
	store := &domain.Store{
		ID:         s.genID.Generate(),
		Name:       name,
		Handle:     handle,
		Currency:   currency,
		OwnerName:  strings.TrimSpace(req.OwnerName),
		OwnerPhone: strings.TrimSpace(req.OwnerPhone),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, s.db, store); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrHandleTaken
		}
		return nil, err
	}

	resp := toResponse(store)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	storeID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	store, err := s.repo.FindByID(ctx, s.db, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(store)
	return &resp, nil
}

func (s *Service) GetByHandle(ctx context.Context, handle string) (*domain.Response, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, domain.ErrInvalidHandle
	}

	store, err := s.repo.FindByHandle(ctx, s.db, handle)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(store)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	storeID, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	store, err := s.repo.FindByID(ctx, s.db, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		store.Name = name
	}
	if req.OwnerName != nil {
		store.OwnerName = strings.TrimSpace(*req.OwnerName)
	}
	if req.OwnerPhone != nil {
		store.OwnerPhone = strings.TrimSpace(*req.OwnerPhone)
	}
	if req.RegenerateHandle {
		handle := slug.Make(store.Name)
		if handle == "" {
			return nil, domain.ErrInvalidHandle
		}
		store.Handle = handle
	}

	store.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, store); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrHandleTaken
		}
		return nil, err
	}

	resp := toResponse(store)
	return &resp, nil
}

func toResponse(store *domain.Store) domain.Response {
	return domain.Response{
		ID:         store.ID.String(),
		Name:       store.Name,
		Handle:     store.Handle,
		Currency:   store.Currency,
		OwnerName:  store.OwnerName,
		OwnerPhone: store.OwnerPhone,
		CreatedAt:  store.CreatedAt,
		UpdatedAt:  store.UpdatedAt,
	}
}
