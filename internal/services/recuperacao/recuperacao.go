// Package recuperacao implementa o envio dos dados de cadastro por email,
// limitado a uma vez por dia civil para cada usuário.
//
// A trava diária é um compare-and-swap no armazenamento: a atualização
// condicional de ultima_recuperacao só casa quando ainda não houve
// recuperação hoje, e é avaliada atomicamente pelo banco mesmo com
// requisições concorrentes. Se o envio do email falhar depois da trava
// consumida, o valor anterior é restaurado em melhor esforço, para não
// punir o usuário por um dia inteiro.
package recuperacao

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/retry"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/sl"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/models"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/storage/repository"
)

// Erros devolvidos ao chamador.
var (
	// ErrNaoEncontrado indica que o par email + telefone não casa com
	// nenhum cadastro.
	ErrNaoEncontrado = errors.New("usuário não encontrado")
	// ErrBloqueado indica que a recuperação de hoje já foi usada.
	ErrBloqueado = errors.New("recuperação já realizada hoje")
	// ErrEnvio indica falha na entrega do email; a trava diária foi
	// devolvida e uma nova tentativa é permitida.
	ErrEnvio = errors.New("falha ao enviar o email")
)

// Repository descreve o acesso ao cadastro e à trava diária.
type Repository interface {
	BuscarUsuarioPorEmailETelefone(ctx context.Context, email, telefone string) (*models.Usuario, error)
	TentarMarcarRecuperacao(ctx context.Context, uid string, agora, inicioDoDia time.Time) (bool, error)
	RestaurarRecuperacao(ctx context.Context, uid string, anterior *time.Time) error
}

// Enviador entrega o email com os dados do cadastro.
type Enviador interface {
	Enviar(destinatario, assunto, corpo string) error
}

// Service implementa a recuperação de dados.
type Service struct {
	repo     Repository
	enviador Enviador
	log      *slog.Logger
	agora    func() time.Time
}

// New cria o serviço. agora deve devolver o instante atual no fuso civil.
func New(repo Repository, enviador Enviador, log *slog.Logger, agora func() time.Time) *Service {
	return &Service{
		repo:     repo,
		enviador: enviador,
		log:      log,
		agora:    agora,
	}
}

// EnviarDados localiza o cadastro pelo par email + telefone, consome a
// trava diária e envia os dados por email. Devolve o instante a partir do
// qual uma nova recuperação será aceita.
func (s *Service) EnviarDados(ctx context.Context, email, telefone string) (time.Time, error) {
	var u *models.Usuario
	err := retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		var err error
		u, err = s.repo.BuscarUsuarioPorEmailETelefone(ctx, email, telefone)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNaoEncontrado) {
			return time.Time{}, ErrNaoEncontrado
		}
		return time.Time{}, err
	}

	now := s.agora()
	inicioDoDia := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	proximaLiberacao := inicioDoDia.AddDate(0, 0, 1)
	anterior := u.UltimaRecuperacao

	var ok bool
	err = retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		var err error
		ok, err = s.repo.TentarMarcarRecuperacao(ctx, u.UID, now, inicioDoDia)
		return err
	})
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return proximaLiberacao, ErrBloqueado
	}

	corpo := montarCorpo(u, now)
	if err := s.enviador.Enviar(u.Email, "Seus dados - Rota Presença", corpo); err != nil {
		// Devolve a trava para o usuário tentar de novo hoje. Se a
		// restauração também falhar, o registro fica consumido e o
		// usuário espera o próximo dia; a falha nunca escala.
		rbErr := retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
			return s.repo.RestaurarRecuperacao(ctx, u.UID, anterior)
		})
		if rbErr != nil {
			s.log.Warn("falha ao restaurar a trava de recuperação", sl.Err(rbErr))
		}
		return time.Time{}, fmt.Errorf("%w: %w", ErrEnvio, err)
	}

	s.log.Info("dados de cadastro enviados", slog.String("uid", u.UID))
	return proximaLiberacao, nil
}

// montarCorpo monta o texto do email com os dados do cadastro, no mesmo
// formato da versão original do serviço.
func montarCorpo(u *models.Usuario, now time.Time) string {
	return fmt.Sprintf(`Seus dados cadastrados na Rota Presença:

Nome: %s
Email: %s
Telefone: %s
Graduação: %s
Lotação: %s
Origem: %s

Data do envio: %s`,
		u.Nome, u.Email, u.Telefone, u.Graduacao, u.Lotacao, u.Origem,
		now.Format("02/01/2006 15:04"))
}
