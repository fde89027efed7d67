package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/response"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/models"
)

// AdminOnly devolve um middleware que só deixa passar requisições cujo
// token carrega o papel de administrador. Roda depois do JWTMiddleware.
func AdminOnly(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminOnly"

			papel, ok := r.Context().Value(Papel).(string)
			if !ok || papel != models.PapelAdmin {
				log.Error("acesso de administrador negado",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("acesso restrito ao administrador"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
