package repository

import (
	"context"
)

// ChaveVagas é a chave da lotação do ônibus na tabela de configurações.
const ChaveVagas = "vagas"

// GetInt lê um valor inteiro de configuração. Se a chave ainda não existe,
// a linha é criada com o valor padrão e o padrão é devolvido.
func (s *Storage) GetInt(ctx context.Context, chave string, padrao int) (int, error) {
	const op = "storage.GetInt"

	if _, err := s.DB.ExecContext(ctx,
		`INSERT INTO configuracoes (chave, valor) VALUES ($1, $2)
		 ON CONFLICT (chave) DO NOTHING`, chave, padrao); err != nil {
		return 0, classificar(op, err)
	}

	var valor int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT valor FROM configuracoes WHERE chave = $1`, chave).Scan(&valor); err != nil {
		return 0, classificar(op, err)
	}
	return valor, nil
}

// SetInt grava um valor inteiro de configuração (upsert).
func (s *Storage) SetInt(ctx context.Context, chave string, valor int) error {
	const op = "storage.SetInt"

	if _, err := s.DB.ExecContext(ctx,
		`INSERT INTO configuracoes (chave, valor) VALUES ($1, $2)
		 ON CONFLICT (chave) DO UPDATE SET valor = EXCLUDED.valor`, chave, valor); err != nil {
		return classificar(op, err)
	}
	return nil
}
