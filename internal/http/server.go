package http

import (
	"context"
	"net/http"

	"github.com/ammichelon/dashboard-dinetec/internal/config"
	"github.com/ammichelon/dashboard-dinetec/internal/http/middleware"
	"github.com/ammichelon/dashboard-dinetec/internal/logger"
	"github.com/ammichelon/dashboard-dinetec/internal/metrics"
	"github.com/ammichelon/dashboard-dinetec/internal/repository"
	"github.com/ammichelon/dashboard-dinetec/internal/service/capture"
	"github.com/ammichelon/dashboard-dinetec/internal/util"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct{ e *echo.Echo }

// NewServer wires repositories, the capture service and routes. rds may be nil.
func NewServer(cfg config.Config, sqliteDB *sqlx.DB, rds *redis.Client) *Server {
	// repos (SQLite)
	leadsRepo := repository.NewLeadsRepository(sqliteDB)
	checkinsRepo := repository.NewCheckinsRepository(sqliteDB)
	reportsRepo := repository.NewReportsRepository(sqliteDB)

	// services
	captureSvc := capture.New(sqliteDB, leadsRepo, checkinsRepo)

	// echo
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.Use(
		echoMid.Recover(),
		echoMid.RequestIDWithConfig(echoMid.RequestIDConfig{Generator: util.NewID}),
		echoMid.Logger(),
	)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error {
		if err := sqliteDB.PingContext(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "storage unavailable"})
		}
		return c.String(http.StatusOK, "ok")
	})

	// middlewares
	authMW := middleware.APIKeyMiddleware(cfg.Auth.APIKey)
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          rds,
		RPS:            cfg.RateLimit.RPS,
		Burst:          cfg.RateLimit.Burst,
		KeyPrefix:      "rl:ip:",
		RetryAfterHint: true,
	})

	// routes
	v1 := e.Group("/v1", authMW, rlMW)
	v1.POST("/leads", registerLeadHandler(captureSvc))
	v1.GET("/leads", getLeadHandler(captureSvc))
	v1.POST("/leads/:id/checkins", createCheckinHandler(captureSvc))
	v1.GET("/leads/:id/checkins", listCheckinsHandler(captureSvc))
	v1.GET("/reports/daily", dailyReportHandler(reportsRepo))
	v1.GET("/reports/hourly", hourlyReportHandler(reportsRepo))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	logger.Log.Info("http: listening", zap.String("addr", addr))
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }

// ServeHTTP lets the server be mounted or exercised with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.e.ServeHTTP(w, r) }
