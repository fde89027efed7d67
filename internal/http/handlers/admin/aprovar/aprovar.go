// Package aprovar implementa o handler administrativo que promove um
// cadastro pendente para ativo. O usuário aprovado é avisado por email.
package aprovar

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/response"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/sl"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/auth"
)

// Handler trata as requisições de aprovação de cadastro.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service descreve a aprovação na camada de negócio.
type Service interface {
	Aprovar(ctx context.Context, uid string) error
}

// New cria o Handler com o logger e o serviço informados.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.aprovar"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "uid")
	if uid == "" {
		log.Error("uid ausente na url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("uid ausente na url"))
		return
	}

	if err := h.service.Aprovar(r.Context(), uid); err != nil {
		if errors.Is(err, auth.ErrNaoEncontrado) {
			log.Error("usuário não encontrado")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(auth.ErrNaoEncontrado.Error()))
			return
		}
		log.Error("falha ao aprovar o cadastro", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("falha ao aprovar o cadastro"))
		return
	}

	log.Info("cadastro aprovado", slog.String("uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"mensagem": "cadastro aprovado",
	}))
}
