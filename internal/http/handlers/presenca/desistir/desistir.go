// Package desistir implementa o handler HTTP de desistência: remove a
// presença do próprio usuário da lista do ciclo atual.
package desistir

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/middlewarectx"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/response"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/sl"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/presenca"
)

// Handler trata as requisições de desistência.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service descreve a operação de desistência na camada de negócio.
type Service interface {
	Desistir(ctx context.Context, usuarioUID string) error
}

// New cria o Handler com o logger e o serviço informados.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.presenca.desistir"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	usuarioUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || usuarioUID == "" {
		log.Error("identificação do usuário ausente no contexto")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("sessão inválida"))
		return
	}

	if err := h.service.Desistir(r.Context(), usuarioUID); err != nil {
		if errors.Is(err, presenca.ErrNaoConfirmado) {
			log.Error("não há presença para desistir")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(presenca.ErrNaoConfirmado.Error()))
			return
		}
		log.Error("falha ao remover presença", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("falha ao remover presença"))
		return
	}

	log.Info("presença removida")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"mensagem": "presença removida da lista",
	}))
}
