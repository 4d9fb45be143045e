package server

import (
	"context"

	"fundchamps/internal/config"
	"fundchamps/internal/handler"
	"fundchamps/internal/live"
	authmw "fundchamps/internal/middleware"
	"fundchamps/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

type Server struct {
	echo           *echo.Echo
	adminSecret    string
	stripeHandler  *handler.StripeHandler
	statsHandler   *handler.StatsHandler
	sponsorHandler *handler.SponsorHandler
	liveHandler    *handler.LiveHandler
}

func NewServer(
	cfg *config.Config,
	logger zerolog.Logger,
	stripeService service.StripeService,
	statsService service.StatsService,
	sponsorService service.SponsorService,
	campaignService service.CampaignService,
	hub *live.Hub,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		adminSecret:    cfg.AdminJWTSecret,
		stripeHandler:  handler.NewStripeHandler(stripeService),
		statsHandler:   handler.NewStatsHandler(statsService),
		sponsorHandler: handler.NewSponsorHandler(sponsorService, campaignService),
		liveHandler:    handler.NewLiveHandler(hub),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- public --------
	api.POST("/donate", s.stripeHandler.Donate)
	api.GET("/stats", s.statsHandler.Stats)
	api.POST("/sponsors", s.sponsorHandler.Create)

	// -------- admin --------
	admin := api.Group("", authmw.AdminAuth(s.adminSecret))
	admin.GET("/sponsors", s.sponsorHandler.List)
	admin.POST("/sponsors/:uuid/approve", s.sponsorHandler.Approve)
	admin.POST("/sponsors/:uuid/reject", s.sponsorHandler.Reject)
	admin.DELETE("/sponsors/:uuid", s.sponsorHandler.Delete)
	admin.POST("/campaign-goals", s.sponsorHandler.CreateCampaignGoal)
	admin.GET("/transactions", s.statsHandler.Transactions)

	// -------- processor callbacks / live feed --------
	s.echo.POST("/stripe/webhook", s.stripeHandler.Webhook)
	s.echo.GET("/ws", s.liveHandler.Serve)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
