package models

import "time"

// Ciclo identifica a lista de embarque vigente: o horário de saída e a
// data do embarque. Duas confirmações pertencem à mesma lista quando
// compartilham o mesmo ciclo.
type Ciclo struct {
	Horario string    `json:"horario"`
	Data    time.Time `json:"data"`
}
