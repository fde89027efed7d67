// Package relatorio implementa o handler administrativo que exporta a
// lista de embarque do ciclo atual em PDF.
package relatorio

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/response"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/ranking"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/sl"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/models"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/presenca"
)

// Handler trata as requisições de exportação da lista.
type Handler struct {
	log     *slog.Logger
	lista   ListaService
	gerador Gerador
}

// ListaService descreve a montagem da lista na camada de negócio.
type ListaService interface {
	Rota(ctx context.Context) (*presenca.Rota, error)
}

// Gerador descreve a geração do PDF.
type Gerador interface {
	Gerar(linhas []ranking.Linha, resumo ranking.Resumo, ciclo models.Ciclo) ([]byte, error)
}

// New cria o Handler com o logger e os serviços informados.
func New(log *slog.Logger, lista ListaService, gerador Gerador) *Handler {
	return &Handler{
		log:     log,
		lista:   lista,
		gerador: gerador,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.relatorio"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	rota, err := h.lista.Rota(r.Context())
	if err != nil {
		log.Error("falha ao montar a lista", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("falha ao montar a lista"))
		return
	}

	pdf, err := h.gerador.Gerar(rota.Linhas, rota.Resumo, rota.Status.Ciclo)
	if err != nil {
		log.Error("falha ao gerar o relatório", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("falha ao gerar o relatório"))
		return
	}

	nome := fmt.Sprintf("rota-%s-%s.pdf",
		rota.Status.Ciclo.Data.Format("2006-01-02"), rota.Status.Ciclo.Horario)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", nome))
	if _, err := w.Write(pdf); err != nil {
		log.Error("falha ao escrever a resposta", sl.Err(err))
	}
}
