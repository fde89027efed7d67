package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/retry"
)

// Sentinelas devolvidas pelo repositório. Os serviços decidem o tratamento
// por errors.Is, nunca pelo texto da mensagem.
var (
	// ErrNaoEncontrado indica que a consulta não devolveu nenhuma linha.
	ErrNaoEncontrado = errors.New("registro não encontrado")
	// ErrDuplicado indica violação de unicidade (email ou telefone já usados).
	ErrDuplicado = errors.New("registro duplicado")
)

// classificar decide a natureza do erro na fronteira do armazenamento:
// linhas ausentes e duplicidades viram sentinelas próprias, falhas de
// conexão e de recursos do servidor são marcadas como transitórias para o
// orçamento de retry, e o restante propaga como permanente.
func classificar(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNaoEncontrado)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return fmt.Errorf("%s: %w", op, ErrDuplicado)
		case strings.HasPrefix(pgErr.Code, "08"), // connection_exception
			strings.HasPrefix(pgErr.Code, "53"), // insufficient_resources
			pgErr.Code == "57P01",               // admin_shutdown
			pgErr.Code == "40001":               // serialization_failure
			return fmt.Errorf("%s: %w", op, retry.Transitorio(err))
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w", op, retry.Transitorio(err))
	}
	return fmt.Errorf("%s: %w", op, err)
}
