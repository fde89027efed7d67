// Package main Rota Presença API
//
// @title           Rota Presença API
// @version         1.0
// @description     API da lista de presença do ônibus de transporte da corporação

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Digite "Bearer" seguido de espaço e do token JWT.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/app/rotapresenca"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("iniciando rota-presenca", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := rotapresenca.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("falha ao inicializar a aplicação", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("aplicação encerrada com erro", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("rota-presenca encerrada")
}
