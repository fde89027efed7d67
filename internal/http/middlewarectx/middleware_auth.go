// Package middlewarectx contém os middlewares HTTP de autenticação e
// autorização.
//
// JWTMiddleware valida o token JWT do cabeçalho Authorization e coloca
// uid, email e papel do usuário no contexto para os handlers. AdminOnly
// barra quem não tem papel de administrador. Erro de validação devolve
// HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/response"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/jwt"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/sl"
)

// Key é o tipo das chaves de contexto da requisição HTTP.
type Key string

const (
	// UserUID é a chave do uid do usuário no contexto.
	UserUID Key = "user_uid"
	// Email é a chave do email do usuário no contexto.
	Email Key = "email"
	// Papel é a chave do papel do usuário no contexto.
	Papel Key = "papel"
)

// JWTMiddleware devolve um middleware HTTP que valida o JWT do cabeçalho
// Authorization.
//
// Com token válido, coloca uid, email e papel no contexto da requisição;
// caso contrário responde 401 Unauthorized.
func JWTMiddleware(maker jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("cabeçalho de autorização ausente ou inválido")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("cabeçalho de autorização ausente ou inválido"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := maker.ValidarToken(tokenStr)
			if err != nil {
				log.Error("token inválido ou expirado", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("token inválido ou expirado"))
				return
			}
			ctx := context.WithValue(r.Context(), UserUID, claims.UID)
			ctx = context.WithValue(ctx, Email, claims.Email)
			ctx = context.WithValue(ctx, Papel, claims.Papel)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
