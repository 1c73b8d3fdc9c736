package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	agentdomain "github.com/vocaai/console/internal/agent/domain"
	agentrepository "github.com/vocaai/console/internal/agent/repository"
	agentservice "github.com/vocaai/console/internal/agent/service"
	catalogdomain "github.com/vocaai/console/internal/catalog/domain"
	catalogrepository "github.com/vocaai/console/internal/catalog/repository"
	catalogservice "github.com/vocaai/console/internal/catalog/service"
	"github.com/vocaai/console/internal/config"
	"github.com/vocaai/console/internal/imaging"
	orderdomain "github.com/vocaai/console/internal/order/domain"
	orderrepository "github.com/vocaai/console/internal/order/repository"
	orderservice "github.com/vocaai/console/internal/order/service"
	"github.com/vocaai/console/internal/ratelimit"
	storedomain "github.com/vocaai/console/internal/store/domain"
	storerepository "github.com/vocaai/console/internal/store/repository"
	storeservice "github.com/vocaai/console/internal/store/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:server_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&storedomain.Store{},
		&agentdomain.Agent{},
		&catalogdomain.Catalog{},
		&orderdomain.Order{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := config.Config{PublicOrigin: "https://voca.test", ListenAddr: ":0"}
	log := zap.NewNop()
	limits := config.NewStaticCatalogLimitsHolder(config.DefaultCatalogLimits())
	guard := ratelimit.NewSubmitGuard(nil, log)

	storeSvc := storeservice.New(storeservice.Params{
		DB: db, Log: log, GenID: node, Repo: storerepository.Provide(),
	})
	agentSvc := agentservice.New(agentservice.Params{
		DB: db, Log: log, GenID: node, Repo: agentrepository.Provide(),
	})
	catalogSvc := catalogservice.New(catalogservice.Params{
		Config: cfg,
		DB:     db,
		Log:    log,
		GenID:  node,
		Repo:   catalogrepository.Provide(),
		Agents: agentrepository.Provide(),
		Stores: storerepository.Provide(),
		Images: imaging.NewValidator(limits),
	})
	orderSvc := orderservice.New(orderservice.Params{
		DB:       db,
		Log:      log,
		GenID:    node,
		Repo:     orderrepository.Provide(),
		Catalogs: catalogrepository.Provide(),
		Stores:   storerepository.Provide(),
		Guard:    guard,
	})

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	return NewServer(ServerParams{
		Gin:        engine,
		Cfg:        cfg,
		DB:         db,
		GenID:      node,
		StoreSvc:   storeSvc,
		AgentSvc:   agentSvc,
		CatalogSvc: catalogSvc,
		OrderSvc:   orderSvc,
	})
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, s *Server, method, path, storeID string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if storeID != "" {
		req.Header.Set(HeaderStore, storeID)
	}

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func TestConsoleFlow_CreatePublishOrder(t *testing.T) {
	s := newTestServer(t)

	// Merchant sets up a store.
	w, env := doJSON(t, s, http.MethodPost, "/api/stores", "", gin.H{"name": "Shop One"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "success", env.Status)

	var store storedomain.Response
	require.NoError(t, json.Unmarshal(env.Data, &store))
	assert.Equal(t, "shop-one", store.Handle)

	// An agent to attach the catalog to.
	w, env = doJSON(t, s, http.MethodPost, "/api/agents", store.ID, gin.H{"name": "Sales Assistant", "channel": "whatsapp"})
	require.Equal(t, http.StatusOK, w.Code)

	var agent agentdomain.Response
	require.NoError(t, json.Unmarshal(env.Data, &agent))

	// Catalog lands in the persisted state with its tiers intact.
	w, env = doJSON(t, s, http.MethodPost, "/api/catalogs", store.ID, gin.H{
		"name":     "Tea Pack",
		"agent_id": agent.ID,
		"pricing_tiers": []gin.H{
			{"packs": 1, "price": 17000},
			{"packs": 3, "price": 45000},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "success", env.Status)

	var created catalogdomain.Response
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, catalogdomain.StatePersisted, created.State)
	assert.Empty(t, created.ShareableLink)

	// Publishing derives the link from the page origin and the handle.
	w, env = doJSON(t, s, http.MethodPost, "/api/catalogs/"+created.ID+"/publish", store.ID, gin.H{"origin": "https://x.test"})
	require.Equal(t, http.StatusOK, w.Code)

	var published catalogdomain.PublishResponse
	require.NoError(t, json.Unmarshal(env.Data, &published))
	assert.Equal(t, "https://x.test/shop-one/catalog/"+created.ID, published.ShareableLink)
	assert.True(t, published.LinkPersisted)
	assert.Equal(t, catalogdomain.StatePublished, published.Catalog.State)

	// The public page is readable without any store context.
	w, env = doJSON(t, s, http.MethodGet, "/shop-one/catalog/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view catalogdomain.PublicView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "Tea Pack", view.Name)
	assert.Equal(t, "NGN", view.Currency)

	// Legacy links redirect to the canonical path.
	w, _ = doJSON(t, s, http.MethodGet, "/order/"+created.ID, "", nil)
	require.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/shop-one/catalog/"+created.ID, w.Header().Get("Location"))

	// A customer submits an order from the public page.
	w, env = doJSON(t, s, http.MethodPost, "/api/orders", "", gin.H{
		"catalog_id":     created.ID,
		"selected_tier":  1,
		"quantity":       2,
		"customer_name":  "Ada",
		"customer_phone": "+2348012345678",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "success", env.Status)

	var order orderdomain.Response
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, int64(90000), order.TotalAmount)
	assert.Equal(t, "3 Pack(s) - Tea Pack", order.Items[0].Name)

	// And the merchant sees it in the admin list.
	w, env = doJSON(t, s, http.MethodGet, "/admin/orders", store.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []orderdomain.Response
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestErrorEnvelope(t *testing.T) {
	s := newTestServer(t)

	w, env := doJSON(t, s, http.MethodPost, "/api/stores", "", gin.H{"name": "Shop One"})
	require.Equal(t, http.StatusOK, w.Code)
	var store storedomain.Response
	require.NoError(t, json.Unmarshal(env.Data, &store))

	// Empty catalog name maps to a field-specific message.
	w, env = doJSON(t, s, http.MethodPost, "/api/catalogs", store.ID, gin.H{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "Catalog name is required.", env.Message)

	// Store-scoped routes refuse requests without a store header.
	w, env = doJSON(t, s, http.MethodGet, "/api/catalogs", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", env.Status)

	// Unknown public catalogs are a 404 envelope.
	w, env = doJSON(t, s, http.MethodGet, "/shop-one/catalog/123456789", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "error", env.Status)

	// Order submission without a phone number never reaches the backend.
	w, env = doJSON(t, s, http.MethodPost, "/api/orders", "", gin.H{
		"catalog_id":    "123",
		"customer_name": "Ada",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please enter your phone number.", env.Message)
}
