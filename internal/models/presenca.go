package models

import "time"

// Presenca representa uma confirmação de presença na lista do ciclo atual.
// Os dados do usuário são copiados no momento da confirmação para que a
// lista reflita o cadastro daquele instante.
type Presenca struct {
	UID          string    `json:"uid"`
	UsuarioUID   string    `json:"usuario_uid"`
	Nome         string    `json:"nome"`
	Graduacao    string    `json:"graduacao"`
	Lotacao      string    `json:"lotacao"`
	Origem       string    `json:"origem"`
	Email        string    `json:"email"`
	ConfirmadoEm time.Time `json:"confirmado_em"`
}
