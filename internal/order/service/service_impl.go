package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/vocaai/console/internal/catalog/domain"
	"github.com/vocaai/console/internal/currency"
	"github.com/vocaai/console/internal/order/domain"
	"github.com/vocaai/console/internal/ratelimit"
	storedomain "github.com/vocaai/console/internal/store/domain"
	"github.com/vocaai/console/internal/storectx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Catalogs catalogdomain.Repository
	Stores   storedomain.Repository
	Guard    *ratelimit.SubmitGuard
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	catalogs catalogdomain.Repository
	stores   storedomain.Repository
	guard    *ratelimit.SubmitGuard
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("order.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		catalogs: p.Catalogs,
		stores:   p.Stores,
		guard:    p.Guard,
	}
}

func (s *Service) Submit(ctx context.Context, req domain.SubmitRequest) (*domain.Response, error) {
	// Contact validation runs before any lookup so a bad form never
	// costs a database round trip.
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, domain.ErrCustomerNameRequired
	}
	phone := strings.TrimSpace(req.CustomerPhone)
	if phone == "" {
		return nil, domain.ErrCustomerPhoneRequired
	}

	catalogID, err := snowflake.ParseString(strings.TrimSpace(req.CatalogID))
	if err != nil {
		return nil, domain.ErrCatalogNotFound
	}

	catalog, err := s.catalogs.FindPublicByID(ctx, s.db, catalogID)
	if err != nil {
		return nil, err
	}
	if catalog == nil || catalog.State() != catalogdomain.StatePublished {
		return nil, domain.ErrCatalogNotFound
	}

	composer, err := domain.NewComposer(catalog.Tiers)
	if err != nil {
		return nil, err
	}
	composer, err = composer.SelectTier(req.SelectedTier)
	if err != nil {
		return nil, err
	}
	composer = composer.SetQuantity(req.Quantity)

	guardKey := strings.TrimSpace(req.IdempotencyKey)
	if guardKey == "" {
		guardKey = fmt.Sprintf("%s:%s", catalog.ID.String(), phone)
	}
	release, ok := s.guard.Acquire(ctx, guardKey)
	if !ok {
		return nil, domain.ErrDuplicateSubmit
	}

	tier := catalog.Tiers[composer.SelectedTier]
	itemImage := tier.Image
	if itemImage == "" {
		itemImage = catalog.MainImage
	}
	now := time.Now().UTC()
	order := &domain.Order{
		ID:              s.genID.Generate(),
		StoreID:         catalog.StoreID,
		CatalogID:       catalog.ID,
		AgentID:         catalog.AgentID,
		CustomerName:    name,
		CustomerPhone:   phone,
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerAddress: strings.TrimSpace(req.CustomerAddress),
		Notes:           strings.TrimSpace(req.Notes),
		Items: []domain.OrderItem{{
			Name:     fmt.Sprintf("%d Pack(s) - %s", tier.Packs, catalog.Name),
			Packs:    tier.Packs,
			Price:    tier.Price,
			Quantity: composer.Quantity,
			Image:    itemImage,
		}},
		SelectedTier: composer.SelectedTier,
		Quantity:     composer.Quantity,
		TotalAmount:  composer.TotalAmount,
		Status:       domain.StatusReceived,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, s.db, order); err != nil {
		release()
		return nil, err
	}

	resp := s.toResponse(ctx, order)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	storeID, ok := storectx.StoreIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidStore
	}

	orders, err := s.repo.FindByStore(ctx, s.db, storeID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Response, 0, len(orders))
	for i := range orders {
		out = append(out, s.toResponse(ctx, &orders[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(ctx, order)
	return &resp, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Response, error) {
	switch status {
	case domain.StatusReceived, domain.StatusProcessing, domain.StatusCompleted, domain.StatusCancelled:
	default:
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, s.db, order.ID, status); err != nil {
		return nil, err
	}

	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	resp := s.toResponse(ctx, order)
	return &resp, nil
}

func (s *Service) find(ctx context.Context, id string) (*domain.Order, error) {
	storeID, ok := storectx.StoreIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidStore
	}

	orderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	order, err := s.repo.FindByID(ctx, s.db, storeID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *Service) toResponse(ctx context.Context, order *domain.Order) domain.Response {
	code := "NGN"
	store, err := s.stores.FindByID(ctx, s.db, order.StoreID)
	if err != nil {
		s.log.Warn("store lookup for display total failed",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	} else if store != nil && store.Currency != "" {
		code = store.Currency
	}

	return domain.Response{
		ID:            order.ID.String(),
		StoreID:       order.StoreID.String(),
		CatalogID:     order.CatalogID.String(),
		AgentID:       order.AgentID.String(),
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		CustomerEmail: order.CustomerEmail,
		Notes:         order.Notes,
		Items:         order.Items,
		SelectedTier:  order.SelectedTier,
		Quantity:      order.Quantity,
		TotalAmount:   order.TotalAmount,
		DisplayTotal:  currency.Format(code, order.TotalAmount),
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
