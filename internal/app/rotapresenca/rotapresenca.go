// Package rotapresenca monta e executa a aplicação: armazenamento,
// migrações, cache, serviços e o servidor HTTP.
package rotapresenca

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/cache"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/config"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/jwt"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/smtp"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/migrations"
	authservice "github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/auth"
	envioservice "github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/envio"
	presencaservice "github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/presenca"
	recuperacaoservice "github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/recuperacao"
	relatorioservice "github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/relatorio"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/storage/repository"
)

// App agrupa o servidor HTTP e os recursos que precisam ser fechados no
// desligamento.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New constrói a aplicação inteira a partir da configuração.
//
// Todo o calendário do embarque roda no fuso civil configurado; o relógio
// já convertido é injetado nos serviços que dependem dele.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	fuso, err := time.LoadLocation(cfg.Rota.Timezone)
	if err != nil {
		return nil, fmt.Errorf("fuso horário inválido %q: %w", cfg.Rota.Timezone, err)
	}
	agora := func() time.Time { return time.Now().In(fuso) }

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	transport := smtp.NewTransport(cfg.SMTP, logger)
	envio := envioservice.New(transport, logger)

	presencaService := presencaservice.New(db, cacheRedis, logger, agora, cfg.Rota.VagasPadrao)
	authService := authservice.New(db, jwtMaker, envio, logger)
	recuperacaoService := recuperacaoservice.New(db, envio, logger, agora)
	relatorioService := relatorioservice.New()

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker,
		authService, presencaService, recuperacaoService, relatorioService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run sobe o servidor HTTP e espera o contexto ser cancelado para um
// desligamento gracioso.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("servidor HTTP iniciando", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("desligando o servidor HTTP")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		return err
	}
}
