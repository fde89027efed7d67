// Package password implementa o hash e a conferência seguros de senhas.
//
// GerarHash cria um hash bcrypt para armazenamento; CompararHash confere
// uma senha informada contra o hash guardado.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GerarHash recebe a senha do usuário e devolve o hash bcrypt correspondente.
func GerarHash(senha string) (string, error) {
	const op = "password.GerarHash"
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hash), nil
}

// CompararHash confere o hash bcrypt guardado com a senha informada.
//
// Devolve nil quando a senha corresponde ao hash.
func CompararHash(hashOriginal, senhaInformada string) error {
	const op = "password.CompararHash"
	if err := bcrypt.CompareHashAndPassword([]byte(hashOriginal), []byte(senhaInformada)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
