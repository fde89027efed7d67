// Package ranking ordena e numera a lista de presenças de um ciclo.
//
// A ordenação é estável e usa quatro chaves, nesta ordem: grupo de
// prioridade derivado da graduação, prioridade de origem, prioridade de
// graduação e horário da confirmação. Origem e graduação só desempatam
// dentro do grupo 0; nos grupos FC a ordem é apenas a de confirmação.
package ranking

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/models"
)

// VagasPadrao é a lotação padrão do ônibus quando não há valor configurado.
const VagasPadrao = 38

// Códigos especiais de graduação, ordenados depois de todo o grupo regular.
const (
	GraduacaoFCCom = "FC COM"
	GraduacaoFCTer = "FC TER"
)

// Ordem total das graduações regulares, da mais alta para a mais baixa.
var prioridadeGraduacao = map[string]int{
	"CEL":    1,
	"TC":     2,
	"MAJ":    3,
	"CAP":    4,
	"1º TEN": 5,
	"2º TEN": 6,
	"ASP":    7,
	"ST":     8,
	"SGT":    9,
	"CB":     10,
	"SD":     11,
}

// Prioridade fixa por origem de embarque.
var prioridadeOrigem = map[string]int{
	"CAES":   1,
	"QCG":    2,
	"OUTROS": 3,
}

// prioridadeDesconhecida é usada quando a origem ou a graduação não consta
// nas tabelas: o registro vai para o fim do seu grupo.
const prioridadeDesconhecida = 99

// grupo separa as graduações em três faixas: 0 para as regulares,
// 1 para FC COM e 2 para FC TER. A faixa domina as demais chaves.
func grupo(graduacao string) int {
	switch graduacao {
	case GraduacaoFCCom:
		return 1
	case GraduacaoFCTer:
		return 2
	default:
		return 0
	}
}

func origemPrioridade(origem string) int {
	if p, ok := prioridadeOrigem[origem]; ok {
		return p
	}
	return prioridadeDesconhecida
}

func graduacaoPrioridade(graduacao string) int {
	if p, ok := prioridadeGraduacao[graduacao]; ok {
		return p
	}
	return prioridadeDesconhecida
}

// Linha é uma posição da lista ordenada, pronta para exibição ou exportação.
type Linha struct {
	Posicao   int             `json:"posicao"`
	Rotulo    string          `json:"rotulo"`
	Excedente bool            `json:"excedente"`
	Presenca  models.Presenca `json:"presenca"`
}

// Resumo agrega os totais da lista ordenada.
type Resumo struct {
	Inscritos  int `json:"inscritos"`
	Vagas      int `json:"vagas"`
	Sobra      int `json:"sobra"`
	Excedentes int `json:"excedentes"`
}

// Ordenar classifica as presenças e numera a lista a partir de 1.
//
// Posições até a lotação recebem rótulos numéricos simples; as seguintes
// recebem "Exc-01", "Exc-02", ... contados a partir do primeiro excedente.
// A entrada não é modificada; empates completos preservam a ordem de
// confirmação original.
func Ordenar(presencas []models.Presenca, vagas int) ([]Linha, Resumo) {
	if vagas <= 0 {
		vagas = VagasPadrao
	}

	ordenadas := make([]models.Presenca, len(presencas))
	copy(ordenadas, presencas)

	sort.SliceStable(ordenadas, func(i, j int) bool {
		a, b := ordenadas[i], ordenadas[j]
		ga, gb := grupo(a.Graduacao), grupo(b.Graduacao)
		if ga != gb {
			return ga < gb
		}
		if ga == 0 {
			oa, ob := origemPrioridade(a.Origem), origemPrioridade(b.Origem)
			if oa != ob {
				return oa < ob
			}
			pa, pb := graduacaoPrioridade(a.Graduacao), graduacaoPrioridade(b.Graduacao)
			if pa != pb {
				return pa < pb
			}
		}
		return a.ConfirmadoEm.Before(b.ConfirmadoEm)
	})

	linhas := make([]Linha, len(ordenadas))
	for i, p := range ordenadas {
		pos := i + 1
		linha := Linha{Posicao: pos, Presenca: p}
		if pos <= vagas {
			linha.Rotulo = strconv.Itoa(pos)
		} else {
			linha.Excedente = true
			linha.Rotulo = fmt.Sprintf("Exc-%02d", pos-vagas)
		}
		linhas[i] = linha
	}

	resumo := Resumo{Inscritos: len(ordenadas), Vagas: vagas}
	if d := vagas - resumo.Inscritos; d > 0 {
		resumo.Sobra = d
	}
	if d := resumo.Inscritos - vagas; d > 0 {
		resumo.Excedentes = d
	}
	return linhas, resumo
}
