package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/models"
)

const colunasUsuario = `uid, nome, email, telefone, graduacao, lotacao, origem,
	senha_hash, papel, status, ultima_recuperacao, criado_em`

// lerUsuario é o único ponto que converte uma linha de usuarios para a
// forma canônica models.Usuario.
func lerUsuario(row interface{ Scan(...any) error }) (*models.Usuario, error) {
	u := &models.Usuario{}
	var ultimaRecuperacao sql.NullTime
	if err := row.Scan(&u.UID, &u.Nome, &u.Email, &u.Telefone, &u.Graduacao,
		&u.Lotacao, &u.Origem, &u.SenhaHash, &u.Papel, &u.Status,
		&ultimaRecuperacao, &u.CriadoEm); err != nil {
		return nil, err
	}
	if ultimaRecuperacao.Valid {
		u.UltimaRecuperacao = &ultimaRecuperacao.Time
	}
	return u, nil
}

// CriarUsuario grava um novo usuário e devolve o uid gerado.
func (s *Storage) CriarUsuario(ctx context.Context, u models.Usuario) (string, error) {
	const op = "storage.CriarUsuario"

	var uid string
	query := `INSERT INTO usuarios (nome, email, telefone, graduacao, lotacao, origem,
			      senha_hash, papel, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		u.Nome, u.Email, u.Telefone, u.Graduacao, u.Lotacao, u.Origem,
		u.SenhaHash, u.Papel, u.Status).Scan(&uid); err != nil {
		return "", classificar(op, err)
	}
	return uid, nil
}

// BuscarUsuarioPorUID devolve o usuário pelo uid.
func (s *Storage) BuscarUsuarioPorUID(ctx context.Context, uid string) (*models.Usuario, error) {
	const op = "storage.BuscarUsuarioPorUID"

	query := fmt.Sprintf(`SELECT %s FROM usuarios WHERE uid = $1`, colunasUsuario)
	u, err := lerUsuario(s.DB.QueryRowContext(ctx, query, uid))
	if err != nil {
		return nil, classificar(op, err)
	}
	return u, nil
}

// BuscarUsuarioPorEmail devolve o usuário pelo email.
func (s *Storage) BuscarUsuarioPorEmail(ctx context.Context, email string) (*models.Usuario, error) {
	const op = "storage.BuscarUsuarioPorEmail"

	query := fmt.Sprintf(`SELECT %s FROM usuarios WHERE email = $1`, colunasUsuario)
	u, err := lerUsuario(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, classificar(op, err)
	}
	return u, nil
}

// BuscarUsuarioPorEmailETelefone devolve o usuário que casa exatamente com
// o par email + telefone, usado na recuperação de dados.
func (s *Storage) BuscarUsuarioPorEmailETelefone(ctx context.Context, email, telefone string) (*models.Usuario, error) {
	const op = "storage.BuscarUsuarioPorEmailETelefone"

	query := fmt.Sprintf(`SELECT %s FROM usuarios WHERE email = $1 AND telefone = $2`, colunasUsuario)
	u, err := lerUsuario(s.DB.QueryRowContext(ctx, query, email, telefone))
	if err != nil {
		return nil, classificar(op, err)
	}
	return u, nil
}

// ListarUsuariosPorStatus devolve os usuários com o status pedido, ou todos
// quando status é vazio, ordenados pela data de criação.
func (s *Storage) ListarUsuariosPorStatus(ctx context.Context, status string) ([]*models.Usuario, error) {
	const op = "storage.ListarUsuariosPorStatus"

	query := fmt.Sprintf(`SELECT %s FROM usuarios WHERE ($1 = '' OR status = $1) ORDER BY criado_em`, colunasUsuario)
	rows, err := s.DB.QueryContext(ctx, query, status)
	if err != nil {
		return nil, classificar(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Usuario
	for rows.Next() {
		u, err := lerUsuario(rows)
		if err != nil {
			return nil, classificar(op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, classificar(op, err)
	}
	return result, nil
}

// AtualizarStatusUsuario muda o status do usuário (aprovação e bloqueio).
func (s *Storage) AtualizarStatusUsuario(ctx context.Context, uid, status string) error {
	const op = "storage.AtualizarStatusUsuario"

	res, err := s.DB.ExecContext(ctx,
		`UPDATE usuarios SET status = $1 WHERE uid = $2`, status, uid)
	if err != nil {
		return classificar(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classificar(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNaoEncontrado)
	}
	return nil
}

// AtualizarPerfil altera telefone, lotação e origem do usuário.
func (s *Storage) AtualizarPerfil(ctx context.Context, uid, telefone, lotacao, origem string) error {
	const op = "storage.AtualizarPerfil"

	res, err := s.DB.ExecContext(ctx,
		`UPDATE usuarios SET telefone = $1, lotacao = $2, origem = $3 WHERE uid = $4`,
		telefone, lotacao, origem, uid)
	if err != nil {
		return classificar(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classificar(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNaoEncontrado)
	}
	return nil
}

// AtualizarSenha substitui o hash de senha do usuário.
func (s *Storage) AtualizarSenha(ctx context.Context, uid, senhaHash string) error {
	const op = "storage.AtualizarSenha"

	res, err := s.DB.ExecContext(ctx,
		`UPDATE usuarios SET senha_hash = $1 WHERE uid = $2`, senhaHash, uid)
	if err != nil {
		return classificar(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classificar(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNaoEncontrado)
	}
	return nil
}

// TentarMarcarRecuperacao grava o instante da recuperação somente se ainda
// não houve recuperação hoje. O predicado é avaliado atomicamente pelo
// banco, linha a linha: é o compare-and-swap que garante uma recuperação
// por dia mesmo com requisições concorrentes.
func (s *Storage) TentarMarcarRecuperacao(ctx context.Context, uid string, agora, inicioDoDia time.Time) (bool, error) {
	const op = "storage.TentarMarcarRecuperacao"

	res, err := s.DB.ExecContext(ctx,
		`UPDATE usuarios
		 SET ultima_recuperacao = $1
		 WHERE uid = $2
		   AND (ultima_recuperacao IS NULL OR ultima_recuperacao < $3)`,
		agora, uid, inicioDoDia)
	if err != nil {
		return false, classificar(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, classificar(op, err)
	}
	return n == 1, nil
}

// RestaurarRecuperacao devolve ultima_recuperacao ao valor anterior ao
// compare-and-swap. Usado quando o envio do email falha depois que a trava
// diária já foi consumida.
func (s *Storage) RestaurarRecuperacao(ctx context.Context, uid string, anterior *time.Time) error {
	const op = "storage.RestaurarRecuperacao"

	var valor sql.NullTime
	if anterior != nil {
		valor = sql.NullTime{Time: *anterior, Valid: true}
	}
	_, err := s.DB.ExecContext(ctx,
		`UPDATE usuarios SET ultima_recuperacao = $1 WHERE uid = $2`, valor, uid)
	if err != nil {
		return classificar(op, err)
	}
	return nil
}
