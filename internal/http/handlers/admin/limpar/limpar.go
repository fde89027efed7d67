// Package limpar implementa o handler administrativo que apaga a lista
// de presença inteira, fora do reset automático de ciclo.
package limpar

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/response"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/sl"
)

// Handler trata as requisições de limpeza manual da lista.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service descreve a limpeza na camada de negócio.
type Service interface {
	LimparLista(ctx context.Context) error
}

// New cria o Handler com o logger e o serviço informados.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.limpar"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.service.LimparLista(r.Context()); err != nil {
		log.Error("falha ao limpar a lista", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("falha ao limpar a lista"))
		return
	}

	log.Info("lista limpa")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"mensagem": "lista de presença apagada",
	}))
}
