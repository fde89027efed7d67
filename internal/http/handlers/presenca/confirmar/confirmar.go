// Package confirmar implementa o handler HTTP de confirmação de
// presença no embarque do ciclo atual.
//
// O usuário vem do token JWT; o handler só traduz os erros de estado do
// serviço em respostas HTTP.
package confirmar

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
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/models"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/presenca"
)

// Handler trata as requisições de confirmação de presença.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service descreve a operação de confirmação na camada de negócio.
type Service interface {
	Confirmar(ctx context.Context, usuarioUID string) (models.Ciclo, error)
}

// New cria o Handler com o logger e o serviço informados.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Confirmar presença
// @Description Registra a presença do usuário autenticado no embarque do ciclo atual.
// @Tags Presença
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Presença confirmada"
// @Failure 401 {object} response.ErrorResponse "Sessão inválida"
// @Failure 403 {object} response.ErrorResponse "Cadastro não ativo"
// @Failure 409 {object} response.ErrorResponse "Janela fechada ou já confirmado"
// @Failure 500 {object} response.ErrorResponse "Erro interno"
// @Router /presenca [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.presenca.confirmar"

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

	ciclo, err := h.service.Confirmar(r.Context(), usuarioUID)
	if err != nil {
		switch {
		case errors.Is(err, presenca.ErrJanelaFechada):
			log.Error("janela de confirmação fechada")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(presenca.ErrJanelaFechada.Error()))
		case errors.Is(err, presenca.ErrJaConfirmado):
			log.Error("presença já confirmada")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(presenca.ErrJaConfirmado.Error()))
		case errors.Is(err, presenca.ErrUsuarioNaoAtivo):
			log.Error("cadastro não ativo")
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error(presenca.ErrUsuarioNaoAtivo.Error()))
		default:
			log.Error("falha ao confirmar presença", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("falha ao confirmar presença"))
		}
		return
	}

	log.Info("presença confirmada", slog.String("ciclo", ciclo.Horario))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"mensagem": "presença confirmada",
		"ciclo":    ciclo,
	}))
}
