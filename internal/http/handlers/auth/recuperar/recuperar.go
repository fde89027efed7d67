// Package recuperar implementa o handler HTTP de recuperação de dados
// de cadastro.
//
// O usuário informa email e telefone; se o par casa com um cadastro, os
// dados são enviados por email, no máximo uma vez por dia.
package recuperar

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/response"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/sl"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/recuperacao"
)

// Request identifica o cadastro a recuperar.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Telefone string `json:"telefone" validate:"required,min=10,max=15"`
}

// Handler trata as requisições de recuperação.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service descreve a operação de recuperação na camada de negócio.
type Service interface {
	EnviarDados(ctx context.Context, email, telefone string) (time.Time, error)
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
// @Summary Recuperação de dados
// @Description Envia os dados do cadastro por email, limitado a uma vez por dia.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Email e telefone do cadastro"
// @Success 200 {object} map[string]any "Email enviado"
// @Failure 400 {object} response.ErrorResponse "JSON inválido"
// @Failure 422 {object} response.ErrorResponse "Erro de validação"
// @Failure 404 {object} response.ErrorResponse "Cadastro não encontrado"
// @Failure 429 {object} response.ErrorResponse "Recuperação já usada hoje"
// @Failure 500 {object} response.ErrorResponse "Falha no envio"
// @Router /recuperar [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.recuperar"

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

	proxima, err := h.service.EnviarDados(r.Context(), req.Email, req.Telefone)
	if err != nil {
		switch {
		case errors.Is(err, recuperacao.ErrNaoEncontrado):
			log.Error("cadastro não encontrado")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(recuperacao.ErrNaoEncontrado.Error()))
		case errors.Is(err, recuperacao.ErrBloqueado):
			log.Error("recuperação já usada hoje")
			w.WriteHeader(http.StatusTooManyRequests)
			render.JSON(w, r, response.Response{
				Status: response.StatusError,
				Error:  recuperacao.ErrBloqueado.Error(),
				Data:   map[string]any{"proxima_liberacao": proxima},
			})
		case errors.Is(err, recuperacao.ErrEnvio):
			log.Error("falha ao enviar o email", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(recuperacao.ErrEnvio.Error()))
		default:
			log.Error("falha na recuperação", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("falha na recuperação"))
		}
		return
	}

	log.Info("dados de cadastro enviados")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"mensagem":          "dados enviados para o email cadastrado",
		"proxima_liberacao": proxima,
	}))
}
