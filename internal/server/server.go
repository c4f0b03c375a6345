// Package server exposes the USSD/backoffice HTTP surface over gin.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/belifehq/belife/internal/config"
	contractdomain "github.com/belifehq/belife/internal/contract/domain"
	insurancedomain "github.com/belifehq/belife/internal/insurance/domain"
	premiumdomain "github.com/belifehq/belife/internal/premium/domain"
	subscriptiondomain "github.com/belifehq/belife/internal/subscription/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Config        config.Config
	Log           *zap.Logger
	DB            *gorm.DB
	SubSvc        subscriptiondomain.Service
	PremiumSvc    premiumdomain.Service
	ContractSvc   contractdomain.Service
	InsuranceRepo insurancedomain.Repository
}

type Server struct {
	cfg           config.Config
	log           *zap.Logger
	db            *gorm.DB
	subSvc        subscriptiondomain.Service
	premiumSvc    premiumdomain.Service
	contractSvc   contractdomain.Service
	insuranceRepo insurancedomain.Repository
}

func New(p Params) *Server {
	return &Server{
		cfg:           p.Config,
		log:           p.Log.Named("server"),
		db:            p.DB,
		subSvc:        p.SubSvc,
		premiumSvc:    p.PremiumSvc,
		contractSvc:   p.ContractSvc,
		insuranceRepo: p.InsuranceRepo,
	}
}

// Engine builds the gin engine with all routes registered.
func (s *Server) Engine() *gin.Engine {
	if s.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1", s.APIKeyRequired())
	{
		v1.POST("/subscriptions", s.createSubscription)
		v1.POST("/subscriptions/:id/payment", s.confirmSubscriptionPayment)
		v1.GET("/subscriptions/autodebit", s.listAutoDebitSubscriptions)
		v1.GET("/customers/:id/subscriptions", s.listCustomerSubscriptions)
		v1.POST("/premiums", s.createPremium)
		v1.GET("/premiums", s.listPremiums)
		v1.POST("/premiums/:id/payment", s.confirmPremiumPayment)
		v1.GET("/contracts/status", s.contractStatusByPhone)
		v1.GET("/contracts/:number/status", s.contractStatusByNumber)
		v1.GET("/insurances", s.listInsurances)
	}

	return r
}

// Module provides the server and runs it over the fx lifecycle.
var Module = fx.Module("http.server",
	fx.Provide(New),
	fx.Invoke(run),
)

func run(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    ":" + s.cfg.HTTPPort,
		Handler: s.Engine(),
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				s.log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
