package auth

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/jwt"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/password"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/retry"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/models"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/storage/repository"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CriarUsuario(ctx context.Context, u models.Usuario) (string, error) {
	args := m.Called(ctx, u)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) BuscarUsuarioPorUID(ctx context.Context, uid string) (*models.Usuario, error) {
	args := m.Called(ctx, uid)
	if res := args.Get(0); res != nil {
		return res.(*models.Usuario), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) BuscarUsuarioPorEmail(ctx context.Context, email string) (*models.Usuario, error) {
	args := m.Called(ctx, email)
	if res := args.Get(0); res != nil {
		return res.(*models.Usuario), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListarUsuariosPorStatus(ctx context.Context, status string) ([]*models.Usuario, error) {
	args := m.Called(ctx, status)
	if res := args.Get(0); res != nil {
		return res.([]*models.Usuario), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) AtualizarStatusUsuario(ctx context.Context, uid, status string) error {
	return m.Called(ctx, uid, status).Error(0)
}

func (m *MockRepository) AtualizarPerfil(ctx context.Context, uid, telefone, lotacao, origem string) error {
	return m.Called(ctx, uid, telefone, lotacao, origem).Error(0)
}

func (m *MockRepository) AtualizarSenha(ctx context.Context, uid, senhaHash string) error {
	return m.Called(ctx, uid, senhaHash).Error(0)
}

type MockNotificador struct {
	mock.Mock
}

func (m *MockNotificador) Enviar(destinatario, assunto, corpo string) error {
	return m.Called(destinatario, assunto, corpo).Error(0)
}

func novoServico(repo *MockRepository, notif *MockNotificador) *Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	maker := jwt.NewMaker("segredo-de-teste", time.Hour)
	return New(repo, maker, notif, logger)
}

func comHash(t *testing.T, senha string, u models.Usuario) *models.Usuario {
	t.Helper()
	hash, err := password.GerarHash(senha)
	require.NoError(t, err)
	u.SenhaHash = hash
	return &u
}

func TestCadastrarCriaPendenteComHash(t *testing.T) {
	repo := new(MockRepository)
	svc := novoServico(repo, new(MockNotificador))

	repo.On("CriarUsuario", mock.Anything, mock.MatchedBy(func(u models.Usuario) bool {
		return u.Status == models.StatusPendente &&
			u.Papel == models.PapelUsuario &&
			u.SenhaHash != "" && u.SenhaHash != "senha123" &&
			password.CompararHash(u.SenhaHash, "senha123") == nil
	})).Return("uid-novo", nil)

	uid, err := svc.Cadastrar(context.Background(), Cadastro{
		Nome: "Silva", Email: "silva@pm.gov.br", Telefone: "11999990000",
		Graduacao: "SD", Lotacao: "1ª CIA", Origem: "CAES", Senha: "senha123",
	})

	require.NoError(t, err)
	assert.Equal(t, "uid-novo", uid)
}

func TestCadastrarDuplicado(t *testing.T) {
	repo := new(MockRepository)
	svc := novoServico(repo, new(MockNotificador))

	repo.On("CriarUsuario", mock.Anything, mock.Anything).
		Return("", repository.ErrDuplicado)

	_, err := svc.Cadastrar(context.Background(), Cadastro{
		Email: "silva@pm.gov.br", Senha: "senha123",
	})

	assert.ErrorIs(t, err, ErrDuplicado)
}

func TestLoginSucesso(t *testing.T) {
	repo := new(MockRepository)
	svc := novoServico(repo, new(MockNotificador))

	u := comHash(t, "senha123", models.Usuario{
		UID: "uid-1", Email: "silva@pm.gov.br",
		Papel: models.PapelUsuario, Status: models.StatusAtivo,
	})
	repo.On("BuscarUsuarioPorEmail", mock.Anything, "silva@pm.gov.br").Return(u, nil)

	token, logado, err := svc.Login(context.Background(), "silva@pm.gov.br", "senha123")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "uid-1", logado.UID)
}

func TestLoginSenhaErrada(t *testing.T) {
	repo := new(MockRepository)
	svc := novoServico(repo, new(MockNotificador))

	u := comHash(t, "senha123", models.Usuario{
		UID: "uid-1", Email: "silva@pm.gov.br", Status: models.StatusAtivo,
	})
	repo.On("BuscarUsuarioPorEmail", mock.Anything, "silva@pm.gov.br").Return(u, nil)

	_, _, err := svc.Login(context.Background(), "silva@pm.gov.br", "errada")

	assert.ErrorIs(t, err, ErrCredenciaisInvalidas)
}

func TestLoginEmailInexistente(t *testing.T) {
	repo := new(MockRepository)
	svc := novoServico(repo, new(MockNotificador))

	repo.On("BuscarUsuarioPorEmail", mock.Anything, mock.Anything).
		Return(nil, repository.ErrNaoEncontrado)

	_, _, err := svc.Login(context.Background(), "nao@existe.br", "senha123")

	assert.ErrorIs(t, err, ErrCredenciaisInvalidas)
}

func TestLoginCadastroPendente(t *testing.T) {
	repo := new(MockRepository)
	svc := novoServico(repo, new(MockNotificador))

	u := comHash(t, "senha123", models.Usuario{
		UID: "uid-1", Email: "silva@pm.gov.br", Status: models.StatusPendente,
	})
	repo.On("BuscarUsuarioPorEmail", mock.Anything, mock.Anything).Return(u, nil)

	_, _, err := svc.Login(context.Background(), "silva@pm.gov.br", "senha123")

	assert.ErrorIs(t, err, ErrCadastroPendente)
}

func TestLoginCadastroBloqueado(t *testing.T) {
	repo := new(MockRepository)
	svc := novoServico(repo, new(MockNotificador))

	u := comHash(t, "senha123", models.Usuario{
		UID: "uid-1", Email: "silva@pm.gov.br", Status: models.StatusBloqueado,
	})
	repo.On("BuscarUsuarioPorEmail", mock.Anything, mock.Anything).Return(u, nil)

	_, _, err := svc.Login(context.Background(), "silva@pm.gov.br", "senha123")

	assert.ErrorIs(t, err, ErrCadastroBloqueado)
}

func TestAprovarEnviaAviso(t *testing.T) {
	repo := new(MockRepository)
	notif := new(MockNotificador)
	svc := novoServico(repo, notif)

	repo.On("AtualizarStatusUsuario", mock.Anything, "uid-1", models.StatusAtivo).Return(nil)
	repo.On("BuscarUsuarioPorUID", mock.Anything, "uid-1").Return(&models.Usuario{
		UID: "uid-1", Nome: "Silva", Email: "silva@pm.gov.br",
	}, nil)
	notif.On("Enviar", "silva@pm.gov.br", "Cadastro aprovado - Rota Presença", mock.Anything).
		Return(nil)

	require.NoError(t, svc.Aprovar(context.Background(), "uid-1"))
	notif.AssertExpectations(t)
}

func TestAprovarFalhaDeAvisoNaoDesfaz(t *testing.T) {
	repo := new(MockRepository)
	notif := new(MockNotificador)
	svc := novoServico(repo, notif)

	repo.On("AtualizarStatusUsuario", mock.Anything, "uid-1", models.StatusAtivo).Return(nil)
	repo.On("BuscarUsuarioPorUID", mock.Anything, "uid-1").Return(&models.Usuario{
		UID: "uid-1", Nome: "Silva", Email: "silva@pm.gov.br",
	}, nil)
	notif.On("Enviar", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp: down"))

	assert.NoError(t, svc.Aprovar(context.Background(), "uid-1"))
}

func TestAprovarUsuarioInexistente(t *testing.T) {
	repo := new(MockRepository)
	svc := novoServico(repo, new(MockNotificador))

	repo.On("AtualizarStatusUsuario", mock.Anything, "uid-x", models.StatusAtivo).
		Return(repository.ErrNaoEncontrado)

	assert.ErrorIs(t, svc.Aprovar(context.Background(), "uid-x"), ErrNaoEncontrado)
}

func TestTrocarSenhaAtualErrada(t *testing.T) {
	repo := new(MockRepository)
	svc := novoServico(repo, new(MockNotificador))

	u := comHash(t, "atual", models.Usuario{UID: "uid-1"})
	repo.On("BuscarUsuarioPorUID", mock.Anything, "uid-1").Return(u, nil)

	err := svc.TrocarSenha(context.Background(), "uid-1", "errada", "nova")

	assert.ErrorIs(t, err, ErrCredenciaisInvalidas)
	repo.AssertNotCalled(t, "AtualizarSenha", mock.Anything, mock.Anything, mock.Anything)
}

func TestTrocarSenhaSucesso(t *testing.T) {
	repo := new(MockRepository)
	svc := novoServico(repo, new(MockNotificador))

	u := comHash(t, "atual", models.Usuario{UID: "uid-1"})
	repo.On("BuscarUsuarioPorUID", mock.Anything, "uid-1").Return(u, nil)
	repo.On("AtualizarSenha", mock.Anything, "uid-1", mock.MatchedBy(func(hash string) bool {
		return password.CompararHash(hash, "nova") == nil
	})).Return(nil)

	require.NoError(t, svc.TrocarSenha(context.Background(), "uid-1", "atual", "nova"))
	repo.AssertExpectations(t)
}

func TestTrocarSenhaRepeteLeituraTransitoria(t *testing.T) {
	repo := new(MockRepository)
	svc := novoServico(repo, new(MockNotificador))

	u := comHash(t, "atual", models.Usuario{UID: "uid-1"})
	repo.On("BuscarUsuarioPorUID", mock.Anything, "uid-1").
		Return(nil, retry.Transitorio(errors.New("conexão recusada"))).Once()
	repo.On("BuscarUsuarioPorUID", mock.Anything, "uid-1").Return(u, nil).Once()
	repo.On("AtualizarSenha", mock.Anything, "uid-1", mock.Anything).Return(nil)

	require.NoError(t, svc.TrocarSenha(context.Background(), "uid-1", "atual", "nova"))
	repo.AssertNumberOfCalls(t, "BuscarUsuarioPorUID", 2)
}
