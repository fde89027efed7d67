package rotapresenca

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/handlers/admin/aprovar"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/handlers/admin/bloquear"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/handlers/admin/limpar"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/handlers/admin/relatorio"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/handlers/admin/usuarios"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/handlers/admin/vagas"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/handlers/auth/cadastro"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/handlers/auth/login"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/handlers/auth/recuperar"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/handlers/perfil/atualizar"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/handlers/perfil/senha"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/handlers/presenca/confirmar"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/handlers/presenca/desistir"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/handlers/presenca/rota"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/handlers/presenca/status"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/middlewarectx"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/jwt"
	authservice "github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/auth"
	presencaservice "github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/presenca"
	recuperacaoservice "github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/recuperacao"
	relatorioservice "github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/relatorio"
)

// RegisterRoutes registra todas as rotas da aplicação.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	authService *authservice.Service, presencaService *presencaservice.Service,
	recuperacaoService *recuperacaoservice.Service, relatorioService *relatorioservice.Service) {
	// Middlewares globais
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Rotas abertas
		r.Post("/cadastro", cadastro.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Post("/recuperar", recuperar.New(logger, recuperacaoService).ServeHTTP)
		r.Get("/status", status.New(logger, presencaService).ServeHTTP)

		// Grupo autenticado por JWT
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/presenca", confirmar.New(logger, presencaService).ServeHTTP)
			r.Delete("/presenca", desistir.New(logger, presencaService).ServeHTTP)
			r.Get("/rota", rota.New(logger, presencaService).ServeHTTP)
			r.Put("/perfil", atualizar.New(logger, authService).ServeHTTP)
			r.Put("/perfil/senha", senha.New(logger, authService).ServeHTTP)
		})

		// Grupo restrito ao administrador
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.AdminOnly(logger))
			r.Get("/admin/usuarios", usuarios.New(logger, authService).ServeHTTP)
			r.Post("/admin/usuarios/{uid}/aprovar", aprovar.New(logger, authService).ServeHTTP)
			r.Post("/admin/usuarios/{uid}/bloquear", bloquear.New(logger, authService).ServeHTTP)
			vagasHandler := vagas.New(logger, presencaService)
			r.Get("/admin/vagas", vagasHandler.Consultar)
			r.Put("/admin/vagas", vagasHandler.Definir)
			r.Delete("/admin/lista", limpar.New(logger, presencaService).ServeHTTP)
			r.Get("/admin/relatorio", relatorio.New(logger, presencaService, relatorioService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
