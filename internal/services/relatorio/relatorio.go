// Package relatorio gera o relatório PDF da lista de embarque.
package relatorio

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/ranking"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/models"
)

// Service gera o relatório da lista em layout tabular fixo.
type Service struct{}

// New cria o serviço de relatório.
func New() *Service {
	return &Service{}
}

// Gerar produz o PDF da lista ordenada. Linhas excedentes saem em
// vermelho e negrito, como na planilha original.
func (s *Service) Gerar(linhas []ranking.Linha, resumo ranking.Resumo, ciclo models.Ciclo) ([]byte, error) {
	const op = "relatorio.Gerar"

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Rota Presença - Embarque %s de %s",
		ciclo.Horario, ciclo.Data.Format("02/01/2006"))), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Inscritos: %d   Vagas: %d   Sobra: %d   Excedentes: %d",
		resumo.Inscritos, resumo.Vagas, resumo.Sobra, resumo.Excedentes)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	larguras := []float64{15, 60, 25, 45, 25}
	cabecalho := []string{"Nº", "Nome", "Graduação", "Lotação", "Origem"}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, titulo := range cabecalho {
		pdf.CellFormat(larguras[i], 7, tr(titulo), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	for _, linha := range linhas {
		if linha.Excedente {
			pdf.SetFont("Arial", "B", 9)
			pdf.SetTextColor(200, 0, 0)
		} else {
			pdf.SetFont("Arial", "", 9)
			pdf.SetTextColor(0, 0, 0)
		}
		p := linha.Presenca
		celulas := []string{linha.Rotulo, p.Nome, p.Graduacao, p.Lotacao, p.Origem}
		for i, texto := range celulas {
			pdf.CellFormat(larguras[i], 6, tr(texto), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetTextColor(0, 0, 0)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}
