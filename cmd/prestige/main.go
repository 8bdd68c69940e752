package main

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/pkg/errors"

	"prestige/internal/catalog"
	"prestige/internal/config"
	"prestige/internal/http/handlers"
	applog "prestige/internal/log"
	"prestige/internal/money"
	"prestige/internal/repos"
	"prestige/internal/services"
	"prestige/internal/store"
	"prestige/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		applog.Logger().Fatal().Err(err).Msg("load config")
	}

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			applog.Logger().Warn().Err(err).Str("file", cfg.LogFile).Msg("could not open log file")
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	applog.Init(cfg.Environment(), out)

	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		applog.Logger().Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("open store")
	}
	defer closeBackend()

	f := money.NewFormatter(cfg.Currency.Symbol, cfg.Currency.Locale)
	app := fiber.New(fiber.Config{
		Views:        web.Engine(f),
		ErrorHandler: handlers.ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Output: out}))
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/healthz")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests. Please slow down.")
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(store.New(backend), catalog.Default(), services.PricingFromConfig(cfg), f)
	deps.Register(app)

	applog.Logger().Info().
		Str("env", string(cfg.Environment())).
		Str("backend", cfg.StoreBackend).
		Str("port", cfg.Port).
		Msg("prestige listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		applog.Logger().Fatal().Err(err).Msg("listen")
	}
}

func openBackend(cfg config.Config) (store.Backend, func(), error) {
	switch cfg.StoreBackend {
	case "memory":
		return store.NewMemory(), func() {}, nil
	case "redis":
		client, err := store.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedis(client), func() { _ = client.Close() }, nil
	case "sqlite":
		db, err := repos.OpenDB(cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		return repos.NewKVRepo(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, errors.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
