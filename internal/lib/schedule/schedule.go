// Package schedule implementa o calendário da rota: decide se a lista de
// presença está aberta, se o momento atual cai na janela de revisão e qual
// é o ciclo de embarque vigente.
//
// Todas as funções são puras sobre o instante recebido, que deve estar no
// fuso civil da rota (America/Sao_Paulo). Nenhuma função lê o relógio.
package schedule

import (
	"time"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/models"
)

// Horários-alvo dos dois embarques diários.
const (
	HorarioManha = "06:30"
	HorarioTarde = "18:30"
)

// diaSemana converte para a numeração segunda=0 .. domingo=6.
func diaSemana(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// JanelaAberta informa se novas confirmações de presença são aceitas.
//
// Sábado: sempre fechada. Domingo: aberta a partir das 19h. Sexta: fechada a
// partir das 17h e durante a faixa de revisão da manhã [05h, 07h). Segunda a
// quinta: fechada nas faixas [05h, 07h) e [17h, 19h), abertas fora delas.
// As faixas de fechamento incluem o início e excluem o fim.
func JanelaAberta(now time.Time) bool {
	h := now.Hour()
	switch now.Weekday() {
	case time.Saturday:
		return false
	case time.Sunday:
		return h >= 19
	case time.Friday:
		if h >= 17 {
			return false
		}
		return h < 5 || h >= 7
	default:
		if h >= 5 && h < 7 {
			return false
		}
		if h >= 17 && h < 19 {
			return false
		}
		return true
	}
}

// JanelaRevisao informa se o instante cai estritamente dentro de (05h, 07h)
// ou de (17h, 19h), em qualquer dia da semana. Os intervalos aqui são
// abertos: às 05:00:00 em ponto a revisão ainda não começou. É nessa janela
// que os primeiros colocados da lista ganham check-in manual.
func JanelaRevisao(now time.Time) bool {
	horaCheia := func(h int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day(), h, 0, 0, 0, now.Location())
	}
	return (now.After(horaCheia(5)) && now.Before(horaCheia(7))) ||
		(now.After(horaCheia(17)) && now.Before(horaCheia(19)))
}

// CicloAtual calcula o próximo embarque a partir do instante recebido.
//
// Sexta a partir das 17h, sábado o dia todo e domingo antes das 19h apontam
// para a segunda-feira seguinte às 06:30. Depois das 19h o alvo é o 06:30 de
// amanhã; antes das 07h, o 06:30 de hoje; no restante do dia, o 18:30 de hoje.
// Quando a janela fecha para o fim de semana, o ciclo devolvido é sempre a
// próxima abertura, nunca a que acabou de fechar.
func CicloAtual(now time.Time) models.Ciclo {
	wd := diaSemana(now)
	h := now.Hour()
	hoje := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case (wd == 4 && h >= 17) || wd == 5 || (wd == 6 && h < 19):
		dias := (7 - wd) % 7
		return models.Ciclo{Horario: HorarioManha, Data: hoje.AddDate(0, 0, dias)}
	case h >= 19:
		return models.Ciclo{Horario: HorarioManha, Data: hoje.AddDate(0, 0, 1)}
	case h < 7:
		return models.Ciclo{Horario: HorarioManha, Data: hoje}
	default:
		return models.Ciclo{Horario: HorarioTarde, Data: hoje}
	}
}

// CorteReset devolve a ocorrência passada mais recente de 06:50 ou 18:50.
// Se nenhuma das duas ocorreu hoje, vale o 18:50 de ontem. Presenças mais
// antigas que esse marco pertencem a um ciclo já encerrado: a lista é limpa
// dez minutos antes de cada embarque.
func CorteReset(now time.Time) time.Time {
	manha := time.Date(now.Year(), now.Month(), now.Day(), 6, 50, 0, 0, now.Location())
	tarde := time.Date(now.Year(), now.Month(), now.Day(), 18, 50, 0, 0, now.Location())

	switch {
	case !now.Before(tarde):
		return tarde
	case !now.Before(manha):
		return manha
	default:
		return tarde.AddDate(0, 0, -1)
	}
}
