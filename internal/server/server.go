package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/subsynclabs/subsync/internal/config"
	subscriptiondomain "github.com/subsynclabs/subsync/internal/subscription/domain"
	"github.com/subsynclabs/subsync/internal/webhook"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Log             *zap.Logger
	Cfg             config.Config
	DB              *gorm.DB
	WebhookSvc      webhook.Service
	SubscriptionSvc subscriptiondomain.Service
}

type Server struct {
	log             *zap.Logger
	cfg             config.Config
	db              *gorm.DB
	webhookSvc      webhook.Service
	subscriptionSvc subscriptiondomain.Service
}

func NewServer(p Params) *Server {
	return &Server{
		log:             p.Log.Named("server"),
		cfg:             p.Cfg,
		db:              p.DB,
		webhookSvc:      p.WebhookSvc,
		subscriptionSvc: p.SubscriptionSvc,
	}
}

func (s *Server) Handler() http.Handler {
	if s.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", s.Healthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/webhooks/stripe", s.HandleStripeWebhook)
	router.GET("/users/:id/subscription", s.GetUserSubscription)

	return router
}

func (s *Server) Healthz(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Invoke(RunHTTP),
)

func RunHTTP(lc fx.Lifecycle, s *Server, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: s.Handler(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
