// Package jwt implementa a geração e a validação dos tokens de sessão.
//
// O token carrega o contexto explícito da sessão (uid, email e papel do
// usuário): é criado no login, validado a cada requisição pelo middleware
// e expira sozinho — não existe estado de sessão fora dele.
package jwt

import (
	"time"
)

// Maker descreve a interface de geração e validação de tokens de sessão.
type Maker interface {
	// GerarToken cria um token assinado com uid, email e papel do usuário.
	GerarToken(uid, email, papel string) (string, error)
	// ValidarToken confere assinatura e validade e devolve os claims.
	ValidarToken(tokenStr string) (*Claims, error)
}

// MakerImpl implementa Maker com chave secreta HS256 e tempo de vida fixo.
type MakerImpl struct {
	chaveSecreta string        // Chave de assinatura dos tokens
	tokenTTL     time.Duration // Tempo de vida do token
}

// NewMaker cria um MakerImpl a partir da chave secreta e do TTL.
func NewMaker(chaveSecreta string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		chaveSecreta: chaveSecreta,
		tokenTTL:     ttl,
	}
}
