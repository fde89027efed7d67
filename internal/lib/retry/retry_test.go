package retry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSucessoNaPrimeira(t *testing.T) {
	chamadas := 0
	err := Do(context.Background(), 3, func() error {
		chamadas++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, chamadas)
}

func TestDoRepeteTransitorioAteSucesso(t *testing.T) {
	chamadas := 0
	err := Do(context.Background(), 3, func() error {
		chamadas++
		if chamadas < 3 {
			return Transitorio(errors.New("indisponível"))
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, chamadas)
}

func TestDoNaoRepetePermanente(t *testing.T) {
	permanente := errors.New("violação de unicidade")
	chamadas := 0
	err := Do(context.Background(), 3, func() error {
		chamadas++
		return permanente
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, permanente)
	assert.Equal(t, 1, chamadas)
}

func TestDoEsgotaOrcamento(t *testing.T) {
	chamadas := 0
	err := Do(context.Background(), 2, func() error {
		chamadas++
		return Transitorio(errors.New("ainda fora do ar"))
	})
	require.Error(t, err)
	assert.True(t, EhTransitorio(err))
	// orçamento = chamada original + 2 repetições
	assert.Equal(t, 3, chamadas)
}

func TestEhTransitorio(t *testing.T) {
	assert.True(t, EhTransitorio(Transitorio(errors.New("x"))))
	assert.False(t, EhTransitorio(errors.New("x")))
	assert.False(t, EhTransitorio(nil))
}
