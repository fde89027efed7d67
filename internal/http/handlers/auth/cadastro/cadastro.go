// Package cadastro implementa o handler HTTP de cadastro de novos
// usuários.
//
// Decodifica e valida os dados do formulário e delega ao serviço de
// autenticação, que grava o usuário com status pendente de aprovação.
package cadastro

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/response"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/sl"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/auth"
)

// Request são os dados de entrada do cadastro.
type Request struct {
	Nome      string `json:"nome" validate:"required,min=3,max=120"`
	Email     string `json:"email" validate:"required,email"`
	Telefone  string `json:"telefone" validate:"required,min=10,max=15"`
	Graduacao string `json:"graduacao" validate:"required"`
	Lotacao   string `json:"lotacao" validate:"required"`
	Origem    string `json:"origem" validate:"required"`
	Senha     string `json:"senha" validate:"required,min=6"`
}

// Handler trata as requisições de cadastro.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service descreve a operação de cadastro na camada de negócio.
type Service interface {
	Cadastrar(ctx context.Context, c auth.Cadastro) (string, error)
}

// New cria o Handler com o logger e o serviço informados.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Cadastro de usuário
// @Description Cria um cadastro com status pendente de aprovação do administrador.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Dados do cadastro"
// @Success 200 {object} map[string]any "Cadastro criado"
// @Failure 400 {object} response.ErrorResponse "JSON inválido"
// @Failure 422 {object} response.ErrorResponse "Erro de validação"
// @Failure 409 {object} response.ErrorResponse "Email ou telefone já cadastrados"
// @Failure 500 {object} response.ErrorResponse "Erro interno"
// @Router /cadastro [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.cadastro"

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

	uid, err := h.service.Cadastrar(r.Context(), auth.Cadastro{
		Nome:      req.Nome,
		Email:     req.Email,
		Telefone:  req.Telefone,
		Graduacao: req.Graduacao,
		Lotacao:   req.Lotacao,
		Origem:    req.Origem,
		Senha:     req.Senha,
	})
	if err != nil {
		if errors.Is(err, auth.ErrDuplicado) {
			log.Error("cadastro duplicado", sl.Err(err))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(auth.ErrDuplicado.Error()))
			return
		}
		log.Error("falha ao criar o cadastro", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("falha ao criar o cadastro"))
		return
	}

	log.Info("cadastro criado", slog.String("uid", uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"uid":      uid,
		"mensagem": "cadastro criado, aguarde a aprovação do administrador",
	}))
}
