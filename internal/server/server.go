package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/offsetcf/offsetcf/internal/config"
	"github.com/offsetcf/offsetcf/internal/estimator"
	estimatordomain "github.com/offsetcf/offsetcf/internal/estimator/domain"
	"github.com/offsetcf/offsetcf/internal/merchant"
	merchantdomain "github.com/offsetcf/offsetcf/internal/merchant/domain"
	"github.com/offsetcf/offsetcf/internal/observability"
	obsmiddleware "github.com/offsetcf/offsetcf/internal/observability/logger"
	obsmetrics "github.com/offsetcf/offsetcf/internal/observability/metrics"
	obstracing "github.com/offsetcf/offsetcf/internal/observability/tracing"
	"github.com/offsetcf/offsetcf/internal/optin"
	optindomain "github.com/offsetcf/offsetcf/internal/optin/domain"
	"github.com/offsetcf/offsetcf/internal/ratelimit"
	"github.com/offsetcf/offsetcf/internal/summary"
	summarydomain "github.com/offsetcf/offsetcf/internal/summary/domain"
	"github.com/offsetcf/offsetcf/internal/widgetconfig"
	widgetconfigdomain "github.com/offsetcf/offsetcf/internal/widgetconfig/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	merchant.Module,
	estimator.Module,
	optin.Module,
	summary.Module,
	widgetconfig.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(metrics.GinMiddleware())
	r.Use(CORS())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(obsCfg, metrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
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
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	genID           *snowflake.Node
	estimatorSvc    estimatordomain.Service
	merchantSvc     merchantdomain.Service
	optInSvc        optindomain.Service
	summarySvc      summarydomain.Service
	widgetConfigSvc widgetconfigdomain.Service
	obsMetrics      *obsmetrics.Metrics
	optInLimiter    *ratelimit.OptInLimiter
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	GenID           *snowflake.Node
	EstimatorSvc    estimatordomain.Service
	MerchantSvc     merchantdomain.Service
	OptInSvc        optindomain.Service
	SummarySvc      summarydomain.Service
	WidgetConfigSvc widgetconfigdomain.Service
	ObsMetrics      *obsmetrics.Metrics     `optional:"true"`
	OptInLimiter    *ratelimit.OptInLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		genID:           p.GenID,
		estimatorSvc:    p.EstimatorSvc,
		merchantSvc:     p.MerchantSvc,
		optInSvc:        p.OptInSvc,
		summarySvc:      p.SummarySvc,
		widgetConfigSvc: p.WidgetConfigSvc,
		obsMetrics:      p.ObsMetrics,
		optInLimiter:    p.OptInLimiter,
	}

	svc.registerPublicRoutes()
	svc.registerMerchantRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerPublicRoutes mounts the endpoints the storefront widget talks to.
// They carry no auth; the widget runs on arbitrary shop pages.
func (s *Server) registerPublicRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/estimate", s.EstimateOffset)
	v1.POST("/opt-ins", s.OptInRateLimit(), s.RecordOptIn)
	v1.GET("/widget-config", s.GetWidgetConfig)
}

func (s *Server) registerMerchantRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/merchants", s.CreateMerchant)

	store := v1.Group("/merchant/:store")
	{
		store.GET("/widget-config", s.GetMerchantWidgetConfig)
		store.GET("/monthly-summary", s.GetMonthlySummary)
		store.GET("/opt-ins", s.ListOptIns)
	}
}
