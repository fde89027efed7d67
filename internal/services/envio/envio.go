// Package envio monta e envia emails pelo transporte SMTP.
package envio

import (
	"log/slog"
	"strings"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/sl"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/smtp"
)

// Service envia emails de texto simples.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New cria o serviço de envio.
func New(transport smtp.TransportInterface, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// Enviar manda um email de texto simples para o destinatário. Qualquer
// falha de transporte ou autenticação volta como erro de entrega; a ação
// compensatória (se houver) é responsabilidade do chamador.
func (s *Service) Enviar(destinatario, assunto, corpo string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + destinatario,
		"Subject: " + assunto,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		corpo,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("falha ao conectar no servidor SMTP", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("falha no MAIL FROM", sl.Err(err))
		return err
	}
	if err := client.Rcpt(destinatario); err != nil {
		s.log.Error("falha no RCPT TO", slog.String("destinatario", destinatario), sl.Err(err))
		return err
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("falha ao abrir o corpo da mensagem", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("falha ao escrever o corpo da mensagem", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("falha ao fechar o corpo da mensagem", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("falha ao encerrar a sessão SMTP", sl.Err(err))
		return err
	}

	s.log.Info("email enviado", slog.String("destinatario", destinatario))
	return nil
}
