// Package atualizar implementa o handler HTTP de atualização do perfil
// do próprio usuário: telefone, lotação e origem. Nome, graduação e
// email não mudam por aqui.
package atualizar

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/middlewarectx"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/response"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/sl"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/auth"
)

// Request são os campos editáveis do perfil.
type Request struct {
	Telefone string `json:"telefone" validate:"required,min=10,max=15"`
	Lotacao  string `json:"lotacao" validate:"required"`
	Origem   string `json:"origem" validate:"required"`
}

// Handler trata as requisições de atualização de perfil.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service descreve a atualização de perfil na camada de negócio.
type Service interface {
	AtualizarPerfil(ctx context.Context, uid, telefone, lotacao, origem string) error
}

// New cria o Handler com o logger e o serviço informados.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.perfil.atualizar"

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

	if err := h.service.AtualizarPerfil(r.Context(), usuarioUID, req.Telefone, req.Lotacao, req.Origem); err != nil {
		if errors.Is(err, auth.ErrDuplicado) {
			log.Error("telefone já cadastrado")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(auth.ErrDuplicado.Error()))
			return
		}
		log.Error("falha ao atualizar o perfil", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("falha ao atualizar o perfil"))
		return
	}

	log.Info("perfil atualizado", slog.String("uid", usuarioUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"mensagem": "perfil atualizado",
	}))
}
