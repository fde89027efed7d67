// Package retry executa chamadas de armazenamento com um orçamento limitado
// de novas tentativas: backoff exponencial com jitter, intervalo máximo e
// número fixo de tentativas.
//
// Só erros marcados como transitórios na fronteira do armazenamento são
// repetidos; qualquer outro erro interrompe imediatamente. A classificação
// é feita por sentinela tipada, nunca por comparação de texto da mensagem.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrTransitorio marca falhas que valem nova tentativa (limite de taxa,
// indisponibilidade momentânea do banco). É embutido no erro pela camada
// de repositório via Transitorio.
var ErrTransitorio = errors.New("erro transitório de armazenamento")

// MaxTentativasPadrao é o orçamento de repetições usado pelos serviços.
const MaxTentativasPadrao = 3

// Transitorio embute a sentinela ErrTransitorio em err.
func Transitorio(err error) error {
	return fmt.Errorf("%w: %w", ErrTransitorio, err)
}

// EhTransitorio informa se err foi classificado como transitório.
func EhTransitorio(err error) bool {
	return errors.Is(err, ErrTransitorio)
}

// Do executa fn repetindo apenas falhas transitórias, até maxTentativas
// repetições além da chamada original. Erros não transitórios propagam na
// hora; esgotado o orçamento, a última falha transitória é devolvida.
func Do(ctx context.Context, maxTentativas uint64, fn func() error) error {
	operacao := func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if !EhTransitorio(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = 0

	return backoff.Retry(operacao, backoff.WithContext(backoff.WithMaxRetries(bo, maxTentativas), ctx))
}
