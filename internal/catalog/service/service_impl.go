package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	agentdomain "github.com/vocaai/console/internal/agent/domain"
	"github.com/vocaai/console/internal/catalog/domain"
	"github.com/vocaai/console/internal/config"
	"github.com/vocaai/console/internal/imaging"
	storedomain "github.com/vocaai/console/internal/store/domain"
	"github.com/vocaai/console/internal/storectx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Config config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   domain.Repository
	Agents agentdomain.Repository
	Stores storedomain.Repository
	Images *imaging.Validator
}

type Service struct {
	cfg    config.Config
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	repo   domain.Repository
	agents agentdomain.Repository
	stores storedomain.Repository
	images *imaging.Validator
}

func New(p Params) domain.Service {
	return &Service{
		cfg:    p.Config,
		db:     p.DB,
		log:    p.Log.Named("catalog.service"),
		genID:  p.GenID,
		repo:   p.Repo,
		agents: p.Agents,
		stores: p.Stores,
		images: p.Images,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	storeID, ok := storectx.StoreIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidStore
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	agentID, err := snowflake.ParseString(strings.TrimSpace(req.AgentID))
	if err != nil {
		return nil, domain.ErrInvalidAgent
	}
	agent, err := s.agents.FindByID(ctx, s.db, storeID, agentID)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, domain.ErrInvalidAgent
	}

	tiers := req.Tiers
	if len(tiers) == 0 {
		tiers = []domain.PricingTier{domain.DefaultTier()}
	}
	if err := domain.ValidateTiers(tiers); err != nil {
		return nil, err
	}
	if err := s.checkInlineImages(req.MainImage, tiers); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	catalog := &domain.Catalog{
		ID:          s.genID.Generate(),
		StoreID:     storeID,
		AgentID:     agentID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		MainImage:   req.MainImage,
		Tiers:       tiers,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, s.db, catalog); err != nil {
		return nil, err
	}

	resp := toResponse(catalog)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	storeID, ok := storectx.StoreIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidStore
	}

	catalogs, err := s.repo.FindByStore(ctx, s.db, storeID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Response, 0, len(catalogs))
	for i := range catalogs {
		out = append(out, toResponse(&catalogs[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	catalog, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toResponse(catalog)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	catalog, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		catalog.Name = name
	}
	if req.Description != nil {
		catalog.Description = strings.TrimSpace(*req.Description)
	}
	if req.AgentID != nil {
		agentID, err := snowflake.ParseString(strings.TrimSpace(*req.AgentID))
		if err != nil {
			return nil, domain.ErrInvalidAgent
		}
		agent, err := s.agents.FindByID(ctx, s.db, catalog.StoreID, agentID)
		if err != nil {
			return nil, err
		}
		if agent == nil {
			return nil, domain.ErrInvalidAgent
		}
		catalog.AgentID = agentID
	}
	if req.MainImage != nil {
		if err := s.images.CheckInline(*req.MainImage); err != nil {
			return nil, err
		}
		catalog.MainImage = *req.MainImage
	}
	if req.Tiers != nil {
		if err := domain.ValidateTiers(*req.Tiers); err != nil {
			return nil, err
		}
		if err := s.checkInlineImages("", *req.Tiers); err != nil {
			return nil, err
		}
		catalog.Tiers = *req.Tiers
	}
	if req.IsPublic != nil && !*req.IsPublic {
		// Unpublishing is not supported. Publication is one-way; the
		// flag is accepted on input only before first publish.
		if catalog.State() != domain.StatePublished {
			catalog.IsPublic = false
		}
	}

	return s.save(ctx, catalog)
}

func (s *Service) AddTier(ctx context.Context, id string) (*domain.Response, error) {
	catalog, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	catalog.Tiers = domain.AddTier(catalog.Tiers)
	return s.save(ctx, catalog)
}

func (s *Service) RemoveTier(ctx context.Context, id string, index int) (*domain.Response, error) {
	catalog, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	catalog.Tiers = domain.RemoveTier(catalog.Tiers, index)
	return s.save(ctx, catalog)
}

func (s *Service) UpdateTierField(ctx context.Context, req domain.UpdateTierFieldRequest) (*domain.Response, error) {
	catalog, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Field == domain.TierFieldImage {
		if err := s.images.CheckInline(req.Value); err != nil {
			return nil, err
		}
	}

	tiers, err := domain.UpdateTierField(catalog.Tiers, req.Index, req.Field, req.Value)
	if err != nil {
		return nil, err
	}

	catalog.Tiers = tiers
	return s.save(ctx, catalog)
}

func (s *Service) AttachImage(ctx context.Context, req domain.AttachImageRequest) (*domain.Response, error) {
	catalog, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	dataURI, err := s.images.EncodeDataURI(req.Data, req.ContentType)
	if err != nil {
		return nil, err
	}

	if req.TierIndex == nil {
		catalog.MainImage = dataURI
	} else {
		tiers, err := domain.UpdateTierField(catalog.Tiers, *req.TierIndex, domain.TierFieldImage, dataURI)
		if err != nil {
			return nil, err
		}
		catalog.Tiers = tiers
	}

	return s.save(ctx, catalog)
}

func (s *Service) Publish(ctx context.Context, req domain.PublishRequest) (*domain.PublishResponse, error) {
	catalog, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	// Republish re-derives from the current handle and origin, so an
	// owner who renamed their store can refresh the link. For an
	// unchanged handle the derived link is identical.
	store, err := s.stores.FindByID(ctx, s.db, catalog.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrInvalidStore
	}

	origin := strings.TrimSpace(req.Origin)
	if origin == "" {
		origin = s.cfg.PublicOrigin
	}
	link := domain.DeriveShareableLink(origin, store.Handle, catalog.ID)

	if err := s.repo.UpdateLink(ctx, s.db, catalog.ID, link, store.Handle, true); err != nil {
		// The catalog row is intact, only the link write failed. Hand
		// the derived link back so it can still be shared, and leave
		// the stored publication state untouched for a retry.
		s.log.Warn("publish link persist failed",
			zap.String("catalog_id", catalog.ID.String()),
			zap.Error(err),
		)
		return &domain.PublishResponse{
			Catalog:       toResponse(catalog),
			ShareableLink: link,
			LinkPersisted: false,
			Message:       "Catalog saved, but the shareable link could not be stored. You can still share the link below.",
		}, nil
	}

	catalog.ShareableLink = link
	catalog.PublishedHandle = store.Handle
	catalog.IsPublic = true
	catalog.UpdatedAt = time.Now().UTC()

	return &domain.PublishResponse{
		Catalog:       toResponse(catalog),
		ShareableLink: link,
		LinkPersisted: true,
	}, nil
}

func (s *Service) GetPublic(ctx context.Context, handle, id string) (*domain.PublicView, error) {
	view, catalog, err := s.publicView(ctx, id)
	if err != nil {
		return nil, err
	}
	if catalog.PublishedHandle != strings.TrimSpace(handle) {
		return nil, domain.ErrHandleMismatch
	}
	return view, nil
}

func (s *Service) GetPublicByID(ctx context.Context, id string) (*domain.PublicView, error) {
	view, _, err := s.publicView(ctx, id)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) publicView(ctx context.Context, id string) (*domain.PublicView, *domain.Catalog, error) {
	catalogID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, nil, domain.ErrInvalidID
	}

	catalog, err := s.repo.FindPublicByID(ctx, s.db, catalogID)
	if err != nil {
		return nil, nil, err
	}
	if catalog == nil {
		return nil, nil, domain.ErrNotFound
	}
	if catalog.State() != domain.StatePublished {
		return nil, nil, domain.ErrNotPublic
	}

	store, err := s.stores.FindByID(ctx, s.db, catalog.StoreID)
	if err != nil {
		return nil, nil, err
	}
	if store == nil {
		return nil, nil, domain.ErrNotFound
	}

	return &domain.PublicView{
		CatalogID:    catalog.ID.String(),
		StoreID:      catalog.StoreID.String(),
		AgentID:      catalog.AgentID.String(),
		StoreName:    store.Name,
		StoreHandle:  store.Handle,
		Name:         catalog.Name,
		Description:  catalog.Description,
		MainImage:    catalog.MainImage,
		PricingTiers: catalog.Tiers,
		Currency:     store.Currency,
	}, catalog, nil
}

// checkInlineImages runs the encoded-size cap over images carried
// directly on a create/update payload. Upload paths gate through
// EncodeDataURI; inline strings must be capped here.
func (s *Service) checkInlineImages(mainImage string, tiers []domain.PricingTier) error {
	if err := s.images.CheckInline(mainImage); err != nil {
		return err
	}
	for i := range tiers {
		if err := s.images.CheckInline(tiers[i].Image); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) find(ctx context.Context, id string) (*domain.Catalog, error) {
	storeID, ok := storectx.StoreIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidStore
	}

	catalogID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	catalog, err := s.repo.FindByID(ctx, s.db, storeID, catalogID)
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, domain.ErrNotFound
	}
	return catalog, nil
}

func (s *Service) save(ctx context.Context, catalog *domain.Catalog) (*domain.Response, error) {
	catalog.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, catalog); err != nil {
		return nil, err
	}

	resp := toResponse(catalog)
	return &resp, nil
}

func toResponse(catalog *domain.Catalog) domain.Response {
	return domain.Response{
		ID:            catalog.ID.String(),
		StoreID:       catalog.StoreID.String(),
		AgentID:       catalog.AgentID.String(),
		Name:          catalog.Name,
		Description:   catalog.Description,
		MainImage:     catalog.MainImage,
		PricingTiers:  catalog.Tiers,
		IsPublic:      catalog.IsPublic,
		ShareableLink: catalog.ShareableLink,
		State:         catalog.State(),
		CreatedAt:     catalog.CreatedAt,
		UpdatedAt:     catalog.UpdatedAt,
	}
}
