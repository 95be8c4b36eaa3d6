package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/lucidquery/lucid/config"
	"github.com/lucidquery/lucid/internal/agent"
	"github.com/lucidquery/lucid/internal/store"
	"github.com/lucidquery/lucid/provider"
	"github.com/lucidquery/lucid/tools/websearch"
)

// Run wires dependencies and starts the HTTP API server.
func Run(cfg *config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Cookie"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	if cfg.Telemetry.Enabled {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	ctx := context.Background()

	dsn, err := cfg.Storage.Postgres.DSN()
	if err != nil {
		return err
	}
	st, err := store.NewWithDSN(ctx, dsn)
	if err != nil {
		return err
	}

	llm, err := provider.NewProvider(cfg.LLM)
	if err != nil {
		return err
	}

	searcher, err := websearch.NewSearcher(
		websearch.Provider(cfg.Search.Provider),
		cfg.Search.APIKey,
		cfg.Search.Endpoint,
		cfg.Search.Timeout,
	)
	if err != nil {
		return err
	}

	// Optional redis envelope cache in front of the search provider.
	if cfg.Storage.Redis.Host != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr(),
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection failed (%s): %w", cfg.Storage.Redis.Addr(), err)
		}
		searcher = websearch.NewCached(searcher, rdb, cfg.Search.CacheTTL, nil)
	}

	pipelineLogger := log.New(log.Writer(), "[AGENT] ", log.LstdFlags)
	pipeline := agent.NewPipeline(cfg, llm, searcher, pipelineLogger)

	secret := cfg.General.JWTSecret
	if secret == "" {
		return fmt.Errorf("jwt secret not configured (general.jwt_secret or LUCID_JWT_SECRET)")
	}

	api := e.Group("/api")

	ah := &AuthHandler{Store: st, Secret: []byte(secret), Env: cfg.General.Env}
	ah.Register(api.Group("/auth"))

	ch := &ChatsHandler{Store: st}
	ch.Register(api.Group("/chats"), []byte(secret))

	sh := &StreamHandler{
		Pipeline: pipeline,
		Logger:   log.New(log.Writer(), "[STREAM] ", log.LstdFlags),
	}
	sh.Register(api.Group("/chat"), []byte(secret))

	addr := cfg.General.Listen
	if addr == "" {
		addr = ":8080"
	}
	if addr[0] != ':' {
		addr = ":" + addr
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}
