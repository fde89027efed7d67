// Package auth contém a lógica de cadastro, login e administração de
// usuários.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/jwt"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/password"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/retry"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/sl"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/models"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/storage/repository"
)

// Erros de autenticação e de estado do cadastro. A distinção importa: a
// interface mostra uma remediação diferente para cada um.
var (
	ErrCredenciaisInvalidas = errors.New("email ou senha inválidos")
	ErrCadastroPendente     = errors.New("cadastro aguardando aprovação do administrador")
	ErrCadastroBloqueado    = errors.New("cadastro bloqueado")
	ErrDuplicado            = errors.New("email ou telefone já cadastrados")
	ErrNaoEncontrado        = errors.New("usuário não encontrado")
)

// Repository descreve o acesso a usuários no armazenamento.
type Repository interface {
	CriarUsuario(ctx context.Context, u models.Usuario) (string, error)
	BuscarUsuarioPorUID(ctx context.Context, uid string) (*models.Usuario, error)
	BuscarUsuarioPorEmail(ctx context.Context, email string) (*models.Usuario, error)
	ListarUsuariosPorStatus(ctx context.Context, status string) ([]*models.Usuario, error)
	AtualizarStatusUsuario(ctx context.Context, uid, status string) error
	AtualizarPerfil(ctx context.Context, uid, telefone, lotacao, origem string) error
	AtualizarSenha(ctx context.Context, uid, senhaHash string) error
}

// Notificador envia emails informativos. Falha de notificação nunca
// bloqueia a operação que a disparou.
type Notificador interface {
	Enviar(destinatario, assunto, corpo string) error
}

// Cadastro são os dados de entrada de um novo usuário.
type Cadastro struct {
	Nome      string
	Email     string
	Telefone  string
	Graduacao string
	Lotacao   string
	Origem    string
	Senha     string
}

// Service implementa cadastro, login e as ações administrativas.
type Service struct {
	repo        Repository
	jwtMaker    jwt.Maker
	notificador Notificador
	log         *slog.Logger
}

// New cria o serviço de autenticação.
func New(repo Repository, jwtMaker jwt.Maker, notificador Notificador, log *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		jwtMaker:    jwtMaker,
		notificador: notificador,
		log:         log,
	}
}

// Cadastrar cria um usuário com status PENDENTE e senha em hash bcrypt.
// Email ou telefone repetidos devolvem ErrDuplicado antes de qualquer
// outra mutação.
func (s *Service) Cadastrar(ctx context.Context, c Cadastro) (string, error) {
	hash, err := password.GerarHash(c.Senha)
	if err != nil {
		return "", err
	}

	u := models.Usuario{
		Nome:      c.Nome,
		Email:     c.Email,
		Telefone:  c.Telefone,
		Graduacao: c.Graduacao,
		Lotacao:   c.Lotacao,
		Origem:    c.Origem,
		SenhaHash: hash,
		Papel:     models.PapelUsuario,
		Status:    models.StatusPendente,
	}

	var uid string
	err = retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		var err error
		uid, err = s.repo.CriarUsuario(ctx, u)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicado) {
			return "", ErrDuplicado
		}
		return "", err
	}

	s.log.Info("novo cadastro criado", slog.String("uid", uid))
	return uid, nil
}

// Login confere as credenciais e devolve o token de sessão. Só cadastros
// ATIVOS entram; pendentes e bloqueados recebem erros distintos.
func (s *Service) Login(ctx context.Context, email, senha string) (string, *models.Usuario, error) {
	var u *models.Usuario
	err := retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		var err error
		u, err = s.repo.BuscarUsuarioPorEmail(ctx, email)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNaoEncontrado) {
			return "", nil, ErrCredenciaisInvalidas
		}
		return "", nil, err
	}

	if err := password.CompararHash(u.SenhaHash, senha); err != nil {
		return "", nil, ErrCredenciaisInvalidas
	}

	switch u.Status {
	case models.StatusAtivo:
	case models.StatusPendente:
		return "", nil, ErrCadastroPendente
	default:
		return "", nil, ErrCadastroBloqueado
	}

	token, err := s.jwtMaker.GerarToken(u.UID, u.Email, u.Papel)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Aprovar promove um cadastro PENDENTE para ATIVO e avisa o usuário por
// email. O aviso é melhor esforço: falha de envio não desfaz a aprovação.
func (s *Service) Aprovar(ctx context.Context, uid string) error {
	if err := s.mudarStatus(ctx, uid, models.StatusAtivo); err != nil {
		return err
	}

	var u *models.Usuario
	err := retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		var err error
		u, err = s.repo.BuscarUsuarioPorUID(ctx, uid)
		return err
	})
	if err != nil {
		s.log.Warn("aprovado, mas não foi possível carregar o email", sl.Err(err))
		return nil
	}
	corpo := fmt.Sprintf("Olá, %s!\n\nSeu cadastro na Rota Presença foi aprovado.\nVocê já pode entrar e confirmar presença nos embarques.", u.Nome)
	if err := s.notificador.Enviar(u.Email, "Cadastro aprovado - Rota Presença", corpo); err != nil {
		s.log.Warn("falha ao enviar aviso de aprovação", sl.Err(err))
	}
	return nil
}

// Bloquear muda o status do usuário para BLOQUEADO.
func (s *Service) Bloquear(ctx context.Context, uid string) error {
	return s.mudarStatus(ctx, uid, models.StatusBloqueado)
}

func (s *Service) mudarStatus(ctx context.Context, uid, status string) error {
	err := retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		return s.repo.AtualizarStatusUsuario(ctx, uid, status)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNaoEncontrado) {
			return ErrNaoEncontrado
		}
		return err
	}
	s.log.Info("status do usuário alterado",
		slog.String("uid", uid), slog.String("status", status))
	return nil
}

// ListarPorStatus devolve os usuários com o status pedido ("" = todos).
func (s *Service) ListarPorStatus(ctx context.Context, status string) ([]*models.Usuario, error) {
	var lista []*models.Usuario
	err := retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		var err error
		lista, err = s.repo.ListarUsuariosPorStatus(ctx, status)
		return err
	})
	return lista, err
}

// AtualizarPerfil altera telefone, lotação e origem do próprio usuário.
func (s *Service) AtualizarPerfil(ctx context.Context, uid, telefone, lotacao, origem string) error {
	err := retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		return s.repo.AtualizarPerfil(ctx, uid, telefone, lotacao, origem)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicado) {
			return ErrDuplicado
		}
		if errors.Is(err, repository.ErrNaoEncontrado) {
			return ErrNaoEncontrado
		}
	}
	return err
}

// TrocarSenha confere a senha atual e grava o hash da nova.
func (s *Service) TrocarSenha(ctx context.Context, uid, senhaAtual, senhaNova string) error {
	var u *models.Usuario
	err := retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		var err error
		u, err = s.repo.BuscarUsuarioPorUID(ctx, uid)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNaoEncontrado) {
			return ErrNaoEncontrado
		}
		return err
	}
	if err := password.CompararHash(u.SenhaHash, senhaAtual); err != nil {
		return ErrCredenciaisInvalidas
	}

	hash, err := password.GerarHash(senhaNova)
	if err != nil {
		return err
	}
	return retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		return s.repo.AtualizarSenha(ctx, uid, hash)
	})
}
