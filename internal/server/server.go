package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vocaai/console/internal/agent"
	agentdomain "github.com/vocaai/console/internal/agent/domain"
	"github.com/vocaai/console/internal/catalog"
	catalogdomain "github.com/vocaai/console/internal/catalog/domain"
	"github.com/vocaai/console/internal/config"
	"github.com/vocaai/console/internal/imaging"
	"github.com/vocaai/console/internal/observability"
	obsmiddleware "github.com/vocaai/console/internal/observability/logger"
	obsmetrics "github.com/vocaai/console/internal/observability/metrics"
	obstracing "github.com/vocaai/console/internal/observability/tracing"
	"github.com/vocaai/console/internal/order"
	orderdomain "github.com/vocaai/console/internal/order/domain"
	"github.com/vocaai/console/internal/ratelimit"
	"github.com/vocaai/console/internal/store"
	storedomain "github.com/vocaai/console/internal/store/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	imaging.Module,
	ratelimit.Module,
	store.Module,
	agent.Module,
	catalog.Module,
	order.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	genID  *snowflake.Node

	storeSvc   storedomain.Service
	agentSvc   agentdomain.Service
	catalogSvc catalogdomain.Service
	orderSvc   orderdomain.Service

	publicViewLimiter  *rateLimiter
	orderSubmitLimiter *rateLimiter
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	GenID      *snowflake.Node
	StoreSvc   storedomain.Service
	AgentSvc   agentdomain.Service
	CatalogSvc catalogdomain.Service
	OrderSvc   orderdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:             p.Gin,
		cfg:                p.Cfg,
		db:                 p.DB,
		genID:              p.GenID,
		storeSvc:           p.StoreSvc,
		agentSvc:           p.AgentSvc,
		catalogSvc:         p.CatalogSvc,
		orderSvc:           p.OrderSvc,
		publicViewLimiter:  newRateLimiter(120, time.Minute),
		orderSubmitLimiter: newRateLimiter(10, time.Minute),
	}

	svc.registerAPIRoutes()
	svc.registerAdminRoutes()
	svc.registerPublicRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Stores --------
	api.POST("/stores", s.CreateStore)
	api.GET("/stores/:id", s.GetStoreByID)
	api.GET("/stores/by-handle/:handle", s.GetStoreByHandle)
	api.PATCH("/stores/:id", s.UpdateStore)

	// -------- Agents --------
	api.GET("/agents", s.StoreContext(), s.ListAgents)
	api.POST("/agents", s.StoreContext(), s.CreateAgent)
	api.GET("/agents/:id", s.StoreContext(), s.GetAgentByID)

	// -------- Catalogs --------
	catalogs := api.Group("/catalogs", s.StoreContext())
	{
		catalogs.POST("", s.CreateCatalog)
		catalogs.GET("", s.ListCatalogs)
		catalogs.GET("/:id", s.GetCatalogByID)
		catalogs.PATCH("/:id", s.UpdateCatalog)

		catalogs.POST("/:id/tiers", s.AddCatalogTier)
		catalogs.DELETE("/:id/tiers/:index", s.RemoveCatalogTier)
		catalogs.PATCH("/:id/tiers/:index", s.UpdateCatalogTierField)

		catalogs.POST("/:id/images", s.UploadCatalogImage)
		catalogs.POST("/:id/tiers/:index/images", s.UploadCatalogTierImage)

		catalogs.POST("/:id/publish", s.PublishCatalog)
	}

	// -------- Orders (public submit) --------
	api.POST("/orders", s.publicRateLimit(s.orderSubmitLimiter), s.SubmitOrder)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin", s.StoreContext())

	admin.GET("/orders", s.ListOrders)
	admin.GET("/orders/:id", s.GetOrderByID)
	admin.PATCH("/orders/:id/status", s.UpdateOrderStatus)
}

func (s *Server) registerPublicRoutes() {
	s.engine.GET("/:handle/catalog/:id", s.publicRateLimit(s.publicViewLimiter), s.GetPublicCatalog)

	// Legacy share links predate the handle segment.
	s.engine.GET("/order/:id", s.RedirectLegacyOrderLink)
}
