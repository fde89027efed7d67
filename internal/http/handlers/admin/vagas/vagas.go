// Package vagas implementa os handlers administrativos da lotação do
// ônibus: consulta e alteração do número de vagas. A mudança vale para
// a lista atual, reclassificando excedentes na hora.
package vagas

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/response"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/sl"
)

// Request é o novo número de vagas.
type Request struct {
	Vagas int `json:"vagas" validate:"required,gt=0"`
}

// Service descreve a leitura e a escrita da lotação na camada de
// negócio.
type Service interface {
	Vagas(ctx context.Context) (int, error)
	DefinirVagas(ctx context.Context, vagas int) error
}

// Handler trata as requisições de lotação.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New cria o Handler com o logger e o serviço informados.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// Consultar devolve a lotação configurada.
func (h *Handler) Consultar(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.vagas.consultar"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	vagas, err := h.service.Vagas(r.Context())
	if err != nil {
		log.Error("falha ao consultar a lotação", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("falha ao consultar a lotação"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"vagas": vagas,
	}))
}

// Definir grava a nova lotação.
func (h *Handler) Definir(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.vagas.definir"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("falha ao decodificar o corpo da requisição", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("corpo da requisição inválido"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("falha de validação", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.DefinirVagas(r.Context(), req.Vagas); err != nil {
		log.Error("falha ao gravar a lotação", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("falha ao gravar a lotação"))
		return
	}

	log.Info("lotação alterada", slog.Int("vagas", req.Vagas))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"vagas": req.Vagas,
	}))
}
