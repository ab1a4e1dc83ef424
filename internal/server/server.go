package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/heartlink/heartlink/internal/category"
	categorydomain "github.com/heartlink/heartlink/internal/category/domain"
	"github.com/heartlink/heartlink/internal/config"
	"github.com/heartlink/heartlink/internal/donation"
	donationdomain "github.com/heartlink/heartlink/internal/donation/domain"
	"github.com/heartlink/heartlink/internal/need"
	needdomain "github.com/heartlink/heartlink/internal/need/domain"
	"github.com/heartlink/heartlink/internal/observability"
	obsmiddleware "github.com/heartlink/heartlink/internal/observability/logger"
	obsmetrics "github.com/heartlink/heartlink/internal/observability/metrics"
	obstracing "github.com/heartlink/heartlink/internal/observability/tracing"
	"github.com/heartlink/heartlink/internal/orphanage"
	orphanagedomain "github.com/heartlink/heartlink/internal/orphanage/domain"
	"github.com/heartlink/heartlink/internal/providers/pdf"
	"github.com/heartlink/heartlink/internal/ratelimit"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	category.Module,
	orphanage.Module,
	need.Module,
	donation.Module,
	pdf.Module,
	ratelimit.Module,
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

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
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

	orphanageSvc orphanagedomain.Service
	categorySvc  categorydomain.Service
	donationSvc  donationdomain.Service
	needSvc      needdomain.Service

	submitLimiter *ratelimit.DonationSubmitLimiter
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	OrphanageSvc orphanagedomain.Service
	CategorySvc  categorydomain.Service
	DonationSvc  donationdomain.Service
	NeedSvc      needdomain.Service

	SubmitLimiter *ratelimit.DonationSubmitLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		orphanageSvc:  p.OrphanageSvc,
		categorySvc:   p.CategorySvc,
		donationSvc:   p.DonationSvc,
		needSvc:       p.NeedSvc,
		submitLimiter: p.SubmitLimiter,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", IdentityContext())

	orphanages := api.Group("/orphanages")
	{
		orphanages.GET("", s.ListOrphanages)
		orphanages.POST("", s.CreateOrphanage)
		orphanages.GET("/slug/:slug", s.GetOrphanageBySlug)
		orphanages.GET("/:id", s.GetOrphanageByID)
		orphanages.GET("/:id/needs", s.ListOrphanageNeeds)
		orphanages.GET("/:id/needs/statistics", s.OrphanageNeedsStatistics)
		orphanages.GET("/:id/donations", s.ListOrphanageDonations)
		orphanages.GET("/:id/donations/statistics", s.OrphanageDonationStatistics)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", s.ListCategories)
		categories.GET("/resolve", s.ResolveCategory)
		categories.GET("/:id", s.GetCategoryByID)
	}

	donations := api.Group("/donations")
	{
		donations.POST("", s.DonorRequired(), s.CreateDonation)
		donations.GET("", s.DonorRequired(), s.ListMyDonations)
		donations.GET("/statistics", s.DonorRequired(), s.MyDonationStatistics)
		donations.GET("/:id", s.GetDonationByID)
		donations.POST("/:id/confirm", s.OrphanageRequired(), s.ConfirmDonation)
		donations.POST("/:id/complete", s.OrphanageRequired(), s.CompleteDonation)
		donations.POST("/:id/cancel", s.CancelDonation)
		donations.DELETE("/:id", s.DonorRequired(), s.DeleteDonation)
		donations.GET("/:id/receipt", s.DonationReceipt)
	}

	needs := api.Group("/needs")
	{
		needs.POST("", s.OrphanageRequired(), s.CreateNeed)
		needs.GET("/:id", s.GetNeedByID)
		needs.PATCH("/:id", s.OrphanageRequired(), s.UpdateNeed)
		needs.POST("/:id/fulfill", s.OrphanageRequired(), s.FulfillNeed)
		needs.POST("/:id/cancel", s.OrphanageRequired(), s.CancelNeed)
		needs.DELETE("/:id", s.OrphanageRequired(), s.DeleteNeed)
	}
}
