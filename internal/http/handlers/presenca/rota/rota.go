// Package rota implementa o handler HTTP da lista de embarque ordenada.
//
// Devolve as linhas com rótulo de posição, o resumo de vagas e o estado
// da janela, tudo já calculado pelo serviço.
package rota

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/response"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/sl"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/presenca"
)

// Handler trata as requisições da lista de embarque.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service descreve a montagem da lista na camada de negócio.
type Service interface {
	Rota(ctx context.Context) (*presenca.Rota, error)
}

// New cria o Handler com o logger e o serviço informados.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Lista de embarque
// @Description Devolve a lista ordenada do ciclo atual com o resumo de vagas e o estado da janela.
// @Tags Presença
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Lista ordenada"
// @Failure 500 {object} response.ErrorResponse "Erro interno"
// @Router /rota [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.presenca.rota"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	rota, err := h.service.Rota(r.Context())
	if err != nil {
		log.Error("falha ao montar a lista", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("falha ao montar a lista"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(rota))
}
