package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims descreve os dados de sessão guardados no token.
type Claims struct {
	UID                  string `json:"uid"`   // Identificador do usuário
	Email                string `json:"email"` // Email do usuário
	Papel                string `json:"papel"` // Papel: usuario ou admin
	jwt.RegisteredClaims        // Claims padrão (ExpiresAt, IssuedAt etc.)
}

// GerarToken cria um token HS256 com os dados de sessão do usuário.
func (m *MakerImpl) GerarToken(uid, email, papel string) (string, error) {
	claims := Claims{
		UID:   uid,
		Email: email,
		Papel: papel,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.chaveSecreta))
}

// ValidarToken confere a assinatura e a validade do token e devolve os
// claims quando ele é aceito.
func (m *MakerImpl) ValidarToken(tokenStr string) (*Claims, error) {
	const op = "jwt.ValidarToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(m.chaveSecreta), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: token inválido", op)
	}
	return claims, nil
}
