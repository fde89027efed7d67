// Package presenca contém a lógica de negócio da lista de embarque:
// confirmação e desistência, reset de ciclo e montagem da lista ordenada.
package presenca

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/ranking"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/retry"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/schedule"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/sl"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/models"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/storage/repository"
)

// Erros de estado devolvidos ao chamador. Cada um gera uma mensagem de
// remediação própria na interface.
var (
	ErrJanelaFechada   = errors.New("a lista de presença está fechada no momento")
	ErrJaConfirmado    = errors.New("presença já confirmada neste ciclo")
	ErrUsuarioNaoAtivo = errors.New("cadastro ainda não aprovado ou bloqueado")
	ErrNaoConfirmado   = errors.New("não há presença confirmada para desistir")
)

const cacheKeyLista = "rota:lista"

// Repository descreve o acesso a presenças, usuários e configurações.
type Repository interface {
	InserirPresenca(ctx context.Context, p models.Presenca) error
	ListarPresencas(ctx context.Context) ([]models.Presenca, error)
	ExistePresencaDoUsuario(ctx context.Context, usuarioUID string) (bool, error)
	UltimaConfirmacao(ctx context.Context) (time.Time, error)
	RemoverPresencaDoUsuario(ctx context.Context, usuarioUID string) (int, error)
	RemoverTodasPresencas(ctx context.Context) error
	BuscarUsuarioPorUID(ctx context.Context, uid string) (*models.Usuario, error)
	GetInt(ctx context.Context, chave string, padrao int) (int, error)
	SetInt(ctx context.Context, chave string, valor int) error
}

// Cache descreve o cache da lista ordenada.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// StatusRota é o estado da janela devolvido junto com a lista.
type StatusRota struct {
	ListaAberta   bool         `json:"lista_aberta"`
	JanelaRevisao bool         `json:"janela_revisao"`
	Ciclo         models.Ciclo `json:"ciclo"`
}

// Rota é a lista ordenada pronta para exibição, com o resumo e o estado
// da janela.
type Rota struct {
	Linhas []ranking.Linha `json:"linhas"`
	Resumo ranking.Resumo  `json:"resumo"`
	Status StatusRota      `json:"status"`
}

// listaCacheada é a fatia da rota que pode ser cacheada: o estado da
// janela depende do relógio e é sempre recalculado.
type listaCacheada struct {
	Linhas []ranking.Linha `json:"linhas"`
	Resumo ranking.Resumo  `json:"resumo"`
}

// Service implementa as operações da lista de embarque.
type Service struct {
	repo        Repository
	cache       Cache
	log         *slog.Logger
	agora       func() time.Time
	vagasPadrao int
}

// New cria o serviço. agora deve devolver o instante atual já no fuso
// civil da rota; é injetado para os testes controlarem o relógio.
func New(repo Repository, cache Cache, log *slog.Logger, agora func() time.Time, vagasPadrao int) *Service {
	if vagasPadrao <= 0 {
		vagasPadrao = ranking.VagasPadrao
	}
	return &Service{
		repo:        repo,
		cache:       cache,
		log:         log,
		agora:       agora,
		vagasPadrao: vagasPadrao,
	}
}

// Status devolve o estado atual da janela e o ciclo vigente.
func (s *Service) Status() StatusRota {
	now := s.agora()
	return StatusRota{
		ListaAberta:   schedule.JanelaAberta(now),
		JanelaRevisao: schedule.JanelaRevisao(now),
		Ciclo:         schedule.CicloAtual(now),
	}
}

// Confirmar registra a presença do usuário no ciclo atual.
//
// Rejeita com ErrJanelaFechada fora da janela de confirmações, com
// ErrUsuarioNaoAtivo se o cadastro não está ATIVO e com ErrJaConfirmado
// se o usuário já está na lista deste ciclo.
func (s *Service) Confirmar(ctx context.Context, usuarioUID string) (models.Ciclo, error) {
	now := s.agora()
	ciclo := schedule.CicloAtual(now)

	if !schedule.JanelaAberta(now) {
		return ciclo, ErrJanelaFechada
	}
	if err := s.aplicarReset(ctx, now); err != nil {
		return ciclo, err
	}

	var u *models.Usuario
	err := retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		var err error
		u, err = s.repo.BuscarUsuarioPorUID(ctx, usuarioUID)
		return err
	})
	if err != nil {
		return ciclo, err
	}
	if u.Status != models.StatusAtivo {
		return ciclo, ErrUsuarioNaoAtivo
	}

	var existe bool
	err = retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		var err error
		existe, err = s.repo.ExistePresencaDoUsuario(ctx, usuarioUID)
		return err
	})
	if err != nil {
		return ciclo, err
	}
	if existe {
		return ciclo, ErrJaConfirmado
	}

	p := models.Presenca{
		UID:          uuid.New().String(),
		UsuarioUID:   u.UID,
		Nome:         u.Nome,
		Graduacao:    u.Graduacao,
		Lotacao:      u.Lotacao,
		Origem:       u.Origem,
		Email:        u.Email,
		ConfirmadoEm: now,
	}
	err = retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		return s.repo.InserirPresenca(ctx, p)
	})
	if err != nil {
		return ciclo, err
	}

	s.invalidarLista(ctx)
	s.log.Info("presença confirmada",
		slog.String("usuario", u.UID), slog.String("ciclo", ciclo.Horario))
	return ciclo, nil
}

// Desistir remove a presença do próprio usuário da lista atual.
func (s *Service) Desistir(ctx context.Context, usuarioUID string) error {
	var removidas int
	err := retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		var err error
		removidas, err = s.repo.RemoverPresencaDoUsuario(ctx, usuarioUID)
		return err
	})
	if err != nil {
		return err
	}
	if removidas == 0 {
		return ErrNaoConfirmado
	}

	s.invalidarLista(ctx)
	s.log.Info("presença removida", slog.String("usuario", usuarioUID))
	return nil
}

// Rota monta a lista ordenada do ciclo atual, aplicando antes o reset de
// ciclo quando a lista guardada é de um embarque já encerrado.
func (s *Service) Rota(ctx context.Context) (*Rota, error) {
	now := s.agora()
	if err := s.aplicarReset(ctx, now); err != nil {
		return nil, err
	}

	status := StatusRota{
		ListaAberta:   schedule.JanelaAberta(now),
		JanelaRevisao: schedule.JanelaRevisao(now),
		Ciclo:         schedule.CicloAtual(now),
	}

	var cacheada listaCacheada
	found, err := s.cache.Get(ctx, cacheKeyLista, &cacheada)
	if err != nil {
		s.log.Warn("falha ao ler cache da lista", sl.Err(err))
	}
	if found {
		return &Rota{Linhas: cacheada.Linhas, Resumo: cacheada.Resumo, Status: status}, nil
	}

	var presencas []models.Presenca
	err = retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		var err error
		presencas, err = s.repo.ListarPresencas(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	vagas, err := s.Vagas(ctx)
	if err != nil {
		return nil, err
	}

	linhas, resumo := ranking.Ordenar(presencas, vagas)
	if err := s.cache.Set(ctx, cacheKeyLista, listaCacheada{Linhas: linhas, Resumo: resumo}, 30*time.Second); err != nil {
		s.log.Warn("falha ao gravar cache da lista", sl.Err(err))
	}

	return &Rota{Linhas: linhas, Resumo: resumo, Status: status}, nil
}

// Vagas devolve a lotação configurada do ônibus, criando o valor padrão
// na primeira leitura.
func (s *Service) Vagas(ctx context.Context) (int, error) {
	var vagas int
	err := retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		var err error
		vagas, err = s.repo.GetInt(ctx, repository.ChaveVagas, s.vagasPadrao)
		return err
	})
	return vagas, err
}

// DefinirVagas grava uma nova lotação do ônibus.
func (s *Service) DefinirVagas(ctx context.Context, vagas int) error {
	err := retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		return s.repo.SetInt(ctx, repository.ChaveVagas, vagas)
	})
	if err != nil {
		return err
	}
	s.invalidarLista(ctx)
	return nil
}

// LimparLista apaga a lista inteira por ação do administrador.
func (s *Service) LimparLista(ctx context.Context) error {
	err := retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		return s.repo.RemoverTodasPresencas(ctx)
	})
	if err != nil {
		return err
	}
	s.invalidarLista(ctx)
	s.log.Info("lista limpa pelo administrador")
	return nil
}

// aplicarReset apaga a lista quando a confirmação mais recente é anterior
// ao último corte (06:50 ou 18:50): a lista inteira pertence a um ciclo
// encerrado. Rodar o reset de novo sobre uma lista vazia é inócuo.
func (s *Service) aplicarReset(ctx context.Context, now time.Time) error {
	var ultima time.Time
	err := retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		var err error
		ultima, err = s.repo.UltimaConfirmacao(ctx)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNaoEncontrado) {
			return nil
		}
		return err
	}

	if !ultima.Before(schedule.CorteReset(now)) {
		return nil
	}

	err = retry.Do(ctx, retry.MaxTentativasPadrao, func() error {
		return s.repo.RemoverTodasPresencas(ctx)
	})
	if err != nil {
		return err
	}
	s.invalidarLista(ctx)
	s.log.Info("lista do ciclo anterior apagada",
		slog.Time("ultima_confirmacao", ultima), slog.Time("corte", schedule.CorteReset(now)))
	return nil
}

// invalidarLista descarta o cache da lista. Falha de cache nunca bloqueia
// a operação principal.
func (s *Service) invalidarLista(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cacheKeyLista); err != nil {
		s.log.Warn("falha ao invalidar cache da lista", sl.Err(err))
	}
}
