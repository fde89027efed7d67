// Package usuarios implementa o handler administrativo de listagem de
// usuários, com filtro opcional por status via query string.
package usuarios

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/response"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/sl"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/models"
)

// Handler trata as requisições de listagem de usuários.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service descreve a listagem na camada de negócio.
type Service interface {
	ListarPorStatus(ctx context.Context, status string) ([]*models.Usuario, error)
}

// New cria o Handler com o logger e o serviço informados.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Listar usuários
// @Description Lista os usuários cadastrados, com filtro opcional por status.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDENTE, ATIVO ou BLOQUEADO"
// @Success 200 {object} map[string]any "Usuários"
// @Failure 500 {object} response.ErrorResponse "Erro interno"
// @Router /admin/usuarios [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.usuarios"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	status := r.URL.Query().Get("status")

	usuarios, err := h.service.ListarPorStatus(r.Context(), status)
	if err != nil {
		log.Error("falha ao listar usuários", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("falha ao listar usuários"))
		return
	}

	// A senha nunca sai do servidor, nem em hash.
	saida := make([]map[string]any, 0, len(usuarios))
	for _, u := range usuarios {
		saida = append(saida, map[string]any{
			"uid":       u.UID,
			"nome":      u.Nome,
			"email":     u.Email,
			"telefone":  u.Telefone,
			"graduacao": u.Graduacao,
			"lotacao":   u.Lotacao,
			"origem":    u.Origem,
			"papel":     u.Papel,
			"status":    u.Status,
			"criado_em": u.CriadoEm,
		})
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"usuarios": saida,
	}))
}
