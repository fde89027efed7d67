// Package senha implementa o handler HTTP de troca de senha. Exige a
// senha atual antes de gravar a nova.
package senha

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

// Request são as senhas atual e nova.
type Request struct {
	SenhaAtual string `json:"senha_atual" validate:"required"`
	SenhaNova  string `json:"senha_nova" validate:"required,min=6"`
}

// Handler trata as requisições de troca de senha.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service descreve a troca de senha na camada de negócio.
type Service interface {
	TrocarSenha(ctx context.Context, uid, senhaAtual, senhaNova string) error
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
	const op = "handlers.perfil.senha"

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

	if err := h.service.TrocarSenha(r.Context(), usuarioUID, req.SenhaAtual, req.SenhaNova); err != nil {
		if errors.Is(err, auth.ErrCredenciaisInvalidas) {
			log.Error("senha atual incorreta")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("senha atual incorreta"))
			return
		}
		log.Error("falha ao trocar a senha", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("falha ao trocar a senha"))
		return
	}

	log.Info("senha alterada", slog.String("uid", usuarioUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"mensagem": "senha alterada",
	}))
}
