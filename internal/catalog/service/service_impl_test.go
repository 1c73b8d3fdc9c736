package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	agentdomain "github.com/vocaai/console/internal/agent/domain"
	agentrepository "github.com/vocaai/console/internal/agent/repository"
	"github.com/vocaai/console/internal/catalog/domain"
	"github.com/vocaai/console/internal/catalog/repository"
	"github.com/vocaai/console/internal/config"
	"github.com/vocaai/console/internal/imaging"
	storedomain "github.com/vocaai/console/internal/store/domain"
	storerepository "github.com/vocaai/console/internal/store/repository"
	"github.com/vocaai/console/internal/storectx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc   domain.Service
	db    *gorm.DB
	node  *snowflake.Node
	ctx   context.Context
	store storedomain.Store
	agent agentdomain.Agent
}

func setup(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:catalog_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&storedomain.Store{},
		&agentdomain.Agent{},
		&domain.Catalog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	now := time.Now().UTC()
	store := storedomain.Store{
		ID:        node.Generate(),
		Name:      "Shop One",
		Handle:    "shop1",
		Currency:  "NGN",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&store).Error)

	agent := agentdomain.Agent{
		ID:        node.Generate(),
		StoreID:   store.ID,
		Name:      "Sales Assistant",
		Channel:   "whatsapp",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&agent).Error)

	svc := New(Params{
		Config: config.Config{PublicOrigin: "https://voca.test"},
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Repo:   repository.Provide(),
		Agents: agentrepository.Provide(),
		Stores: storerepository.Provide(),
		Images: imaging.NewValidator(config.NewStaticCatalogLimitsHolder(config.DefaultCatalogLimits())),
	})

	return &fixture{
		svc:   svc,
		db:    db,
		node:  node,
		ctx:   storectx.WithStoreID(context.Background(), int64(store.ID)),
		store: store,
		agent: agent,
	}
}

func (f *fixture) createCatalog(t *testing.T, tiers []domain.PricingTier) *domain.Response {
	t.Helper()
	resp, err := f.svc.Create(f.ctx, domain.CreateRequest{
		Name:    "Tea Pack",
		AgentID: f.agent.ID.String(),
		Tiers:   tiers,
	})
	require.NoError(t, err)
	return resp
}

func TestCreate_PersistsCatalog(t *testing.T) {
	f := setup(t)

	resp := f.createCatalog(t, nil)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, domain.StatePersisted, resp.State)
	assert.Empty(t, resp.ShareableLink)
	assert.False(t, resp.IsPublic)

	// No tiers supplied: the catalog starts on a single default tier.
	require.Len(t, resp.PricingTiers, 1)
	assert.Equal(t, domain.DefaultTier(), resp.PricingTiers[0])
}

func TestCreate_Validations(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Create(f.ctx, domain.CreateRequest{Name: "  ", AgentID: f.agent.ID.String()})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = f.svc.Create(f.ctx, domain.CreateRequest{Name: "Tea Pack", AgentID: f.node.Generate().String()})
	assert.ErrorIs(t, err, domain.ErrInvalidAgent)

	_, err = f.svc.Create(f.ctx, domain.CreateRequest{
		Name:    "Tea Pack",
		AgentID: f.agent.ID.String(),
		Tiers:   make([]domain.PricingTier, 4),
	})
	assert.ErrorIs(t, err, domain.ErrTierCountOutOfRange)

	_, err = f.svc.Create(context.Background(), domain.CreateRequest{Name: "Tea Pack", AgentID: f.agent.ID.String()})
	assert.ErrorIs(t, err, domain.ErrInvalidStore)
}

func TestTierOperations_RoundTrip(t *testing.T) {
	f := setup(t)
	created := f.createCatalog(t, []domain.PricingTier{{Packs: 1, Price: 17000}})

	resp, err := f.svc.AddTier(f.ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, resp.PricingTiers, 2)

	resp, err = f.svc.UpdateTierField(f.ctx, domain.UpdateTierFieldRequest{
		ID:    created.ID,
		Index: 1,
		Field: domain.TierFieldPrice,
		Value: "45000",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(45000), resp.PricingTiers[1].Price)

	resp, err = f.svc.RemoveTier(f.ctx, created.ID, 0)
	require.NoError(t, err)
	require.Len(t, resp.PricingTiers, 1)
	assert.Equal(t, int64(45000), resp.PricingTiers[0].Price)

	// Removing the last tier is a persisted no-op.
	resp, err = f.svc.RemoveTier(f.ctx, created.ID, 0)
	require.NoError(t, err)
	assert.Len(t, resp.PricingTiers, 1)
}

func TestAttachImage(t *testing.T) {
	f := setup(t)
	created := f.createCatalog(t, nil)

	png := make([]byte, 64)
	copy(png, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})

	resp, err := f.svc.AttachImage(f.ctx, domain.AttachImageRequest{
		ID:          created.ID,
		Data:        png,
		ContentType: "image/png",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.MainImage, "data:image/png;base64,")

	tierIndex := 0
	resp, err = f.svc.AttachImage(f.ctx, domain.AttachImageRequest{
		ID:          created.ID,
		TierIndex:   &tierIndex,
		Data:        png,
		ContentType: "image/png",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.PricingTiers[0].Image, "data:image/png;base64,")

	_, err = f.svc.AttachImage(f.ctx, domain.AttachImageRequest{
		ID:          created.ID,
		Data:        []byte("<svg></svg>"),
		ContentType: "image/svg+xml",
	})
	assert.ErrorIs(t, err, imaging.ErrUnsupportedImageType)
}

func TestCreate_RejectsOversizedInlineImages(t *testing.T) {
	f := setup(t)
	huge := strings.Repeat("A", config.DefaultCatalogLimits().MaxEncodedImageChars+1)

	_, err := f.svc.Create(f.ctx, domain.CreateRequest{
		Name:      "Tea Pack",
		AgentID:   f.agent.ID.String(),
		MainImage: huge,
	})
	assert.ErrorIs(t, err, imaging.ErrEncodedImageTooLarge)

	_, err = f.svc.Create(f.ctx, domain.CreateRequest{
		Name:    "Tea Pack",
		AgentID: f.agent.ID.String(),
		Tiers:   []domain.PricingTier{{Packs: 1, Price: 17000, Image: huge}},
	})
	assert.ErrorIs(t, err, imaging.ErrEncodedImageTooLarge)
}

func TestUpdate_RejectsOversizedInlineImages(t *testing.T) {
	f := setup(t)
	created := f.createCatalog(t, []domain.PricingTier{{Packs: 1, Price: 17000}})
	huge := strings.Repeat("A", config.DefaultCatalogLimits().MaxEncodedImageChars+1)

	_, err := f.svc.Update(f.ctx, domain.UpdateRequest{ID: created.ID, MainImage: &huge})
	assert.ErrorIs(t, err, imaging.ErrEncodedImageTooLarge)

	tiers := []domain.PricingTier{{Packs: 1, Price: 17000, Image: huge}}
	_, err = f.svc.Update(f.ctx, domain.UpdateRequest{ID: created.ID, Tiers: &tiers})
	assert.ErrorIs(t, err, imaging.ErrEncodedImageTooLarge)

	_, err = f.svc.UpdateTierField(f.ctx, domain.UpdateTierFieldRequest{
		ID:    created.ID,
		Index: 0,
		Field: domain.TierFieldImage,
		Value: huge,
	})
	assert.ErrorIs(t, err, imaging.ErrEncodedImageTooLarge)
}

func TestPublish_DerivesLinkFromStoreHandle(t *testing.T) {
	f := setup(t)
	created := f.createCatalog(t, []domain.PricingTier{{Packs: 1, Price: 17000}})

	resp, err := f.svc.Publish(f.ctx, domain.PublishRequest{ID: created.ID, Origin: "https://x.test"})
	require.NoError(t, err)

	wantLink := "https://x.test/shop1/catalog/" + created.ID
	assert.Equal(t, wantLink, resp.ShareableLink)
	assert.True(t, resp.LinkPersisted)
	assert.Equal(t, domain.StatePublished, resp.Catalog.State)

	got, err := f.svc.Get(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, wantLink, got.ShareableLink)
	assert.True(t, got.IsPublic)
}

func TestPublish_FallsBackToConfiguredOrigin(t *testing.T) {
	f := setup(t)
	created := f.createCatalog(t, nil)

	resp, err := f.svc.Publish(f.ctx, domain.PublishRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "https://voca.test/shop1/catalog/"+created.ID, resp.ShareableLink)
}

func TestPublish_RepublishIsIdempotent(t *testing.T) {
	f := setup(t)
	created := f.createCatalog(t, nil)

	first, err := f.svc.Publish(f.ctx, domain.PublishRequest{ID: created.ID, Origin: "https://x.test"})
	require.NoError(t, err)

	second, err := f.svc.Publish(f.ctx, domain.PublishRequest{ID: created.ID, Origin: "https://x.test"})
	require.NoError(t, err)
	assert.Equal(t, first.ShareableLink, second.ShareableLink)
	assert.True(t, second.LinkPersisted)
}

func TestPublish_RederivesAfterHandleChange(t *testing.T) {
	f := setup(t)
	created := f.createCatalog(t, nil)

	first, err := f.svc.Publish(f.ctx, domain.PublishRequest{ID: created.ID, Origin: "https://x.test"})
	require.NoError(t, err)
	assert.Equal(t, "https://x.test/shop1/catalog/"+created.ID, first.ShareableLink)

	// The store renames its handle; an explicit republish refreshes the
	// link and the captured handle.
	require.NoError(t, f.db.Exec(`UPDATE stores SET handle = 'new-shop' WHERE id = ?`, int64(f.store.ID)).Error)

	second, err := f.svc.Publish(f.ctx, domain.PublishRequest{ID: created.ID, Origin: "https://x.test"})
	require.NoError(t, err)
	assert.Equal(t, "https://x.test/new-shop/catalog/"+created.ID, second.ShareableLink)
	assert.True(t, second.LinkPersisted)

	// The old-handle link stops resolving; the refreshed one works.
	_, err = f.svc.GetPublic(context.Background(), "shop1", created.ID)
	assert.ErrorIs(t, err, domain.ErrHandleMismatch)
	_, err = f.svc.GetPublic(context.Background(), "new-shop", created.ID)
	require.NoError(t, err)
}

func TestPublish_EditsKeepShareableLink(t *testing.T) {
	f := setup(t)
	created := f.createCatalog(t, nil)

	published, err := f.svc.Publish(f.ctx, domain.PublishRequest{ID: created.ID, Origin: "https://x.test"})
	require.NoError(t, err)
	require.NotEmpty(t, published.ShareableLink)

	_, err = f.svc.AddTier(f.ctx, created.ID)
	require.NoError(t, err)
	_, err = f.svc.UpdateTierField(f.ctx, domain.UpdateTierFieldRequest{
		ID:    created.ID,
		Index: 1,
		Field: domain.TierFieldPrice,
		Value: "45000",
	})
	require.NoError(t, err)

	desc := "Loose-leaf blend"
	resp, err := f.svc.Update(f.ctx, domain.UpdateRequest{ID: created.ID, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, published.ShareableLink, resp.ShareableLink)
	assert.True(t, resp.IsPublic)
	assert.Equal(t, domain.StatePublished, resp.State)
}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, db *gorm.DB, catalog *domain.Catalog) error {
	args := m.Called(ctx, db, catalog)
	return args.Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, db *gorm.DB, storeID, id snowflake.ID) (*domain.Catalog, error) {
	args := m.Called(ctx, db, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Catalog), args.Error(1)
}

func (m *mockRepo) FindByStore(ctx context.Context, db *gorm.DB, storeID snowflake.ID) ([]domain.Catalog, error) {
	args := m.Called(ctx, db, storeID)
	return args.Get(0).([]domain.Catalog), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, db *gorm.DB, catalog *domain.Catalog) error {
	args := m.Called(ctx, db, catalog)
	return args.Error(0)
}

func (m *mockRepo) UpdateLink(ctx context.Context, db *gorm.DB, id snowflake.ID, link, handle string, isPublic bool) error {
	args := m.Called(ctx, db, id, link, handle, isPublic)
	return args.Error(0)
}

func (m *mockRepo) FindPublicByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Catalog, error) {
	args := m.Called(ctx, db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Catalog), args.Error(1)
}

func TestPublish_LinkPersistFailureIsDegradedSuccess(t *testing.T) {
	f := setup(t)

	catalog := &domain.Catalog{
		ID:      f.node.Generate(),
		StoreID: f.store.ID,
		AgentID: f.agent.ID,
		Name:    "Tea Pack",
		Tiers:   []domain.PricingTier{{Packs: 1, Price: 17000}},
	}

	repo := new(mockRepo)
	repo.On("FindByID", mock.Anything, mock.Anything, f.store.ID, catalog.ID).Return(catalog, nil)
	repo.On("UpdateLink", mock.Anything, mock.Anything, catalog.ID, mock.Anything, "shop1", true).
		Return(errors.New("write failed"))

	svc := New(Params{
		Config: config.Config{PublicOrigin: "https://voca.test"},
		DB:     f.db,
		Log:    zap.NewNop(),
		GenID:  f.node,
		Repo:   repo,
		Agents: agentrepository.Provide(),
		Stores: storerepository.Provide(),
		Images: imaging.NewValidator(config.NewStaticCatalogLimitsHolder(config.DefaultCatalogLimits())),
	})

	resp, err := svc.Publish(f.ctx, domain.PublishRequest{ID: catalog.ID.String(), Origin: "https://x.test"})
	require.NoError(t, err)

	// Degraded success: the derived link is surfaced best-effort, nothing
	// regresses, and the catalog stays unpublished for a retry.
	assert.False(t, resp.LinkPersisted)
	assert.Equal(t, "https://x.test/shop1/catalog/"+catalog.ID.String(), resp.ShareableLink)
	assert.NotEmpty(t, resp.Message)
	assert.Equal(t, domain.StatePersisted, resp.Catalog.State)
	repo.AssertExpectations(t)
}

func TestGetPublic(t *testing.T) {
	f := setup(t)
	created := f.createCatalog(t, []domain.PricingTier{{Packs: 1, Price: 17000}})

	// Not published yet.
	_, err := f.svc.GetPublic(context.Background(), "shop1", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotPublic)

	_, err = f.svc.Publish(f.ctx, domain.PublishRequest{ID: created.ID})
	require.NoError(t, err)

	view, err := f.svc.GetPublic(context.Background(), "shop1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tea Pack", view.Name)
	assert.Equal(t, "shop1", view.StoreHandle)
	assert.Equal(t, "NGN", view.Currency)

	_, err = f.svc.GetPublic(context.Background(), "someone-else", created.ID)
	assert.ErrorIs(t, err, domain.ErrHandleMismatch)

	_, err = f.svc.GetPublic(context.Background(), "shop1", "not-a-snowflake-id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
