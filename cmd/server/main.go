// Command server runs the conversion engine behind an HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/bankstate/statement-engine/internal/api"
	"github.com/bankstate/statement-engine/internal/config"
	"github.com/bankstate/statement-engine/internal/engine"
	"github.com/bankstate/statement-engine/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	epsilon, err := decimal.NewFromString(cfg.BalanceEpsilon)
	if err != nil {
		log.Fatal().Str("balance_epsilon", cfg.BalanceEpsilon).Msg("invalid balance epsilon")
	}
	ceiling, err := decimal.NewFromString(cfg.BalanceCeiling)
	if err != nil {
		log.Fatal().Str("balance_ceiling", cfg.BalanceCeiling).Msg("invalid balance ceiling")
	}

	eng := engine.New(
		engine.WithDetectionThreshold(cfg.DetectionThreshold),
		engine.WithTolerances(epsilon, ceiling),
	)

	app := fiber.New(fiber.Config{
		AppName:   "statement-engine",
		BodyLimit: cfg.MaxUploadSize,
	})
	app.Use(recover.New())

	h := &api.Handler{
		Engine:   eng,
		Log:      log,
		MaxBatch: cfg.MaxBatchSize,
	}
	h.Register(app)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	log.Info().Str("addr", addr).Msg("starting server")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
