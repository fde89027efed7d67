// Package login implementa o handler HTTP de autenticação.
//
// Decodifica e valida as credenciais, delega o login ao serviço de
// autenticação e, em caso de sucesso, devolve o token JWT da sessão.
// Cadastros pendentes e bloqueados recebem mensagens distintas.
package login

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
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/models"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/auth"
)

// Request são as credenciais de entrada.
type Request struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required,min=6"`
}

// Handler trata as requisições de login.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service descreve a operação de login na camada de negócio.
type Service interface {
	Login(ctx context.Context, email, senha string) (string, *models.Usuario, error)
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
// @Summary Login
// @Description Autentica por email e senha e devolve o token JWT da sessão.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Credenciais"
// @Success 200 {object} map[string]any "Login realizado"
// @Failure 400 {object} response.ErrorResponse "JSON inválido"
// @Failure 422 {object} response.ErrorResponse "Erro de validação"
// @Failure 401 {object} response.ErrorResponse "Credenciais inválidas"
// @Failure 403 {object} response.ErrorResponse "Cadastro pendente ou bloqueado"
// @Failure 500 {object} response.ErrorResponse "Erro interno"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	token, u, err := h.service.Login(r.Context(), req.Email, req.Senha)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrCredenciaisInvalidas):
			log.Error("credenciais inválidas")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(auth.ErrCredenciaisInvalidas.Error()))
		case errors.Is(err, auth.ErrCadastroPendente):
			log.Error("cadastro pendente de aprovação")
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error(auth.ErrCadastroPendente.Error()))
		case errors.Is(err, auth.ErrCadastroBloqueado):
			log.Error("cadastro bloqueado")
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error(auth.ErrCadastroBloqueado.Error()))
		default:
			log.Error("falha no login", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("falha no login"))
		}
		return
	}

	log.Info("login realizado", slog.String("uid", u.UID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token": token,
		"usuario": map[string]any{
			"uid":       u.UID,
			"nome":      u.Nome,
			"email":     u.Email,
			"graduacao": u.Graduacao,
			"lotacao":   u.Lotacao,
			"origem":    u.Origem,
			"papel":     u.Papel,
		},
	}))
}
