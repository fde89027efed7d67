// Package status implementa o handler HTTP do estado da janela: aberta
// ou fechada, em revisão ou não, e qual o ciclo vigente. É a rota que a
// interface consulta antes de habilitar o botão de confirmação.
package status

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/response"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/presenca"
)

// Handler trata as requisições de estado da janela.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service descreve a consulta de estado na camada de negócio.
type Service interface {
	Status() presenca.StatusRota
}

// New cria o Handler com o logger e o serviço informados.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.StatusOKWithData(h.service.Status()))
}
