package repository

import (
	"context"
	"time"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/models"
)

// InserirPresenca grava uma confirmação de presença.
func (s *Storage) InserirPresenca(ctx context.Context, p models.Presenca) error {
	const op = "storage.InserirPresenca"

	query := `INSERT INTO presencas (uid, usuario_uid, nome, graduacao, lotacao, origem,
			      email, confirmado_em)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := s.DB.ExecContext(ctx, query,
		p.UID, p.UsuarioUID, p.Nome, p.Graduacao, p.Lotacao, p.Origem,
		p.Email, p.ConfirmadoEm)
	if err != nil {
		return classificar(op, err)
	}
	return nil
}

// ListarPresencas devolve todas as presenças em ordem de confirmação.
func (s *Storage) ListarPresencas(ctx context.Context) ([]models.Presenca, error) {
	const op = "storage.ListarPresencas"

	query := `SELECT uid, usuario_uid, nome, graduacao, lotacao, origem, email, confirmado_em
			  FROM presencas
			  ORDER BY confirmado_em ASC;`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, classificar(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Presenca
	for rows.Next() {
		var p models.Presenca
		if err = rows.Scan(&p.UID, &p.UsuarioUID, &p.Nome, &p.Graduacao,
			&p.Lotacao, &p.Origem, &p.Email, &p.ConfirmadoEm); err != nil {
			return nil, classificar(op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, classificar(op, err)
	}
	return result, nil
}

// ExistePresencaDoUsuario informa se o usuário já está na lista atual.
func (s *Storage) ExistePresencaDoUsuario(ctx context.Context, usuarioUID string) (bool, error) {
	const op = "storage.ExistePresencaDoUsuario"

	var existe bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM presencas WHERE usuario_uid = $1)`, usuarioUID).Scan(&existe)
	if err != nil {
		return false, classificar(op, err)
	}
	return existe, nil
}

// UltimaConfirmacao devolve o horário da confirmação mais recente da lista.
// Com a lista vazia devolve ErrNaoEncontrado.
func (s *Storage) UltimaConfirmacao(ctx context.Context) (time.Time, error) {
	const op = "storage.UltimaConfirmacao"

	var ultimo *time.Time
	err := s.DB.QueryRowContext(ctx,
		`SELECT MAX(confirmado_em) FROM presencas`).Scan(&ultimo)
	if err != nil {
		return time.Time{}, classificar(op, err)
	}
	if ultimo == nil {
		return time.Time{}, classificar(op, ErrNaoEncontrado)
	}
	return *ultimo, nil
}

// RemoverPresencaDoUsuario apaga a confirmação do usuário (desistência).
// Devolve quantas linhas foram removidas.
func (s *Storage) RemoverPresencaDoUsuario(ctx context.Context, usuarioUID string) (int, error) {
	const op = "storage.RemoverPresencaDoUsuario"

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM presencas WHERE usuario_uid = $1`, usuarioUID)
	if err != nil {
		return 0, classificar(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classificar(op, err)
	}
	return int(n), nil
}

// RemoverTodasPresencas limpa a lista inteira no reset de ciclo. Apagar uma
// lista já vazia é inócuo, então execuções concorrentes do reset são seguras.
func (s *Storage) RemoverTodasPresencas(ctx context.Context) error {
	const op = "storage.RemoverTodasPresencas"

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM presencas`); err != nil {
		return classificar(op, err)
	}
	return nil
}
