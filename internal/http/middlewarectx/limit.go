package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/response"
)

var limiter = rate.NewLimiter(10, 30)

// RateLimitMiddleware limita a vazão global de requisições. Protege o
// serviço nos picos de abertura de janela, quando todos confirmam ao
// mesmo tempo.
func RateLimitMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Error("excesso de requisições")
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("excesso de requisições, tente novamente em instantes"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
