package ranking

import (
	"fmt"
	"testing"
	"time"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/models"
)

var base = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

func presenca(nome, graduacao, origem string, minuto int) models.Presenca {
	return models.Presenca{
		Nome:         nome,
		Graduacao:    graduacao,
		Origem:       origem,
		ConfirmadoEm: base.Add(time.Duration(minuto) * time.Minute),
	}
}

func nomes(linhas []Linha) []string {
	out := make([]string, len(linhas))
	for i, l := range linhas {
		out[i] = l.Presenca.Nome
	}
	return out
}

func TestOrdenarPrioridades(t *testing.T) {
	// Cenário do embarque: FC TER confirmou primeiro, mas o grupo domina
	// origem e graduação, e dentro do grupo 0 a origem domina a graduação.
	entrada := []models.Presenca{
		presenca("ter", GraduacaoFCTer, "CAES", 3),
		presenca("cap-qcg", "CAP", "QCG", 1),
		presenca("com", GraduacaoFCCom, "OUTROS", 2),
		presenca("sd-caes", "SD", "CAES", 4),
	}

	linhas, _ := Ordenar(entrada, VagasPadrao)

	want := []string{"com", "sd-caes", "cap-qcg", "ter"}
	got := nomes(linhas)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ordem = %v, want %v", got, want)
		}
	}
}

func TestOrdenarGraduacaoDesempataDentroDaOrigem(t *testing.T) {
	entrada := []models.Presenca{
		presenca("sd", "SD", "CAES", 1),
		presenca("cel", "CEL", "CAES", 2),
		presenca("sgt", "SGT", "CAES", 3),
	}

	linhas, _ := Ordenar(entrada, VagasPadrao)

	want := []string{"cel", "sgt", "sd"}
	got := nomes(linhas)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ordem = %v, want %v", got, want)
		}
	}
}

func TestOrdenarEstavelPorConfirmacao(t *testing.T) {
	// Mesmo grupo, origem e graduação: quem confirmou antes fica na frente,
	// independentemente da ordem do slice de entrada.
	entradas := [][]models.Presenca{
		{
			presenca("cedo", "SD", "CAES", 1),
			presenca("tarde", "SD", "CAES", 2),
		},
		{
			presenca("tarde", "SD", "CAES", 2),
			presenca("cedo", "SD", "CAES", 1),
		},
	}

	for i, entrada := range entradas {
		linhas, _ := Ordenar(entrada, VagasPadrao)
		if linhas[0].Presenca.Nome != "cedo" || linhas[1].Presenca.Nome != "tarde" {
			t.Errorf("entrada %d: ordem = %v, want [cedo tarde]", i, nomes(linhas))
		}
	}
}

func TestOrdenarGruposFCSoDesempatamPorConfirmacao(t *testing.T) {
	entrada := []models.Presenca{
		presenca("com-tarde", GraduacaoFCCom, "OUTROS", 5),
		presenca("ter-cedo", GraduacaoFCTer, "CAES", 1),
		presenca("com-cedo", GraduacaoFCCom, "QCG", 2),
	}

	linhas, _ := Ordenar(entrada, VagasPadrao)

	want := []string{"com-cedo", "com-tarde", "ter-cedo"}
	got := nomes(linhas)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ordem = %v, want %v", got, want)
		}
	}
}

func TestOrdenarOrigemDesconhecidaVaiParaOFim(t *testing.T) {
	entrada := []models.Presenca{
		presenca("sem-origem", "CEL", "", 1),
		presenca("outros", "SD", "OUTROS", 2),
	}

	linhas, _ := Ordenar(entrada, VagasPadrao)

	if linhas[0].Presenca.Nome != "outros" {
		t.Fatalf("ordem = %v, want [outros sem-origem]", nomes(linhas))
	}
}

func TestOrdenarRotulosEExcedentes(t *testing.T) {
	var entrada []models.Presenca
	for i := 0; i < 41; i++ {
		entrada = append(entrada, presenca(fmt.Sprintf("p%02d", i), "SD", "CAES", i))
	}

	linhas, resumo := Ordenar(entrada, 38)

	casos := []struct {
		idx       int
		rotulo    string
		excedente bool
	}{
		{0, "1", false},
		{37, "38", false},
		{38, "Exc-01", true},
		{39, "Exc-02", true},
		{40, "Exc-03", true},
	}
	for _, c := range casos {
		l := linhas[c.idx]
		if l.Rotulo != c.rotulo || l.Excedente != c.excedente {
			t.Errorf("posição %d: (%q, %v), want (%q, %v)",
				c.idx+1, l.Rotulo, l.Excedente, c.rotulo, c.excedente)
		}
	}

	if resumo.Inscritos != 41 || resumo.Vagas != 38 || resumo.Sobra != 0 || resumo.Excedentes != 3 {
		t.Errorf("resumo = %+v, want {41 38 0 3}", resumo)
	}
}

func TestOrdenarResumoComSobra(t *testing.T) {
	entrada := []models.Presenca{
		presenca("a", "SD", "CAES", 1),
		presenca("b", "CB", "QCG", 2),
	}

	_, resumo := Ordenar(entrada, 38)

	if resumo.Inscritos != 2 || resumo.Sobra != 36 || resumo.Excedentes != 0 {
		t.Errorf("resumo = %+v, want {2 38 36 0}", resumo)
	}
}

func TestOrdenarListaVazia(t *testing.T) {
	linhas, resumo := Ordenar(nil, 38)
	if len(linhas) != 0 {
		t.Errorf("linhas = %v, want vazio", linhas)
	}
	if resumo.Sobra != 38 {
		t.Errorf("sobra = %d, want 38", resumo.Sobra)
	}
}
