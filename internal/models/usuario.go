// Package models contém as estruturas de domínio do serviço: o usuário
// cadastrado, a presença confirmada na lista e o ciclo de embarque.
// As estruturas são usadas pela lógica de negócio e pelo armazenamento.
package models

import "time"

// Status possíveis de um cadastro. Todo cadastro nasce PENDENTE e só
// passa a ATIVO após aprovação do administrador.
const (
	StatusPendente  = "PENDENTE"
	StatusAtivo     = "ATIVO"
	StatusBloqueado = "BLOQUEADO"
)

// Papéis de acesso. O papel admin libera as rotas administrativas.
const (
	PapelUsuario = "usuario"
	PapelAdmin   = "admin"
)

// Usuario representa um policial cadastrado no serviço de rota.
type Usuario struct {
	UID               string     // Identificador único gerado pelo banco
	Nome              string     // Nome de guerra
	Email             string     // Email (único)
	Telefone          string     // Telefone, apenas dígitos (único)
	Graduacao         string     // Graduação (SD, CB, SGT, ...)
	Lotacao           string     // Unidade de lotação
	Origem            string     // Origem do embarque
	SenhaHash         string     // Hash bcrypt da senha
	Papel             string     // usuario ou admin
	Status            string     // PENDENTE, ATIVO ou BLOQUEADO
	UltimaRecuperacao *time.Time // Última recuperação de dados (nil se nunca houve)
	CriadoEm          time.Time  // Data de criação do cadastro
}
