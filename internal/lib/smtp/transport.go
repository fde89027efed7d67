package smtp

import (
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/smtp"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/config"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/sl"
)

// Transport implementa o transporte SMTP com STARTTLS.
type Transport struct {
	cfg config.SMTP
	log *slog.Logger
}

// smtpClientWrapper adapta *smtp.Client à interface Client.
type smtpClientWrapper struct {
	client *smtp.Client
}

func (w *smtpClientWrapper) Mail(from string) error {
	return w.client.Mail(from)
}

func (w *smtpClientWrapper) Rcpt(to string) error {
	return w.client.Rcpt(to)
}

func (w *smtpClientWrapper) Data() (io.WriteCloser, error) {
	return w.client.Data()
}

func (w *smtpClientWrapper) Quit() error {
	return w.client.Quit()
}

func (w *smtpClientWrapper) Close() error {
	return w.client.Close()
}

// NewTransport cria um novo Transport.
func NewTransport(cfg config.SMTP, log *slog.Logger) *Transport {
	return &Transport{cfg: cfg, log: log}
}

// Connect abre a conexão com o servidor SMTP, negocia STARTTLS e autentica.
func (t *Transport) Connect() (Client, error) {
	addr := t.cfg.SMTPHost + ":" + t.cfg.SMTPPort

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.log.Error("falha ao conectar no servidor SMTP", sl.Err(err))
		return nil, fmt.Errorf("falha ao conectar no servidor SMTP: %w", err)
	}

	client, err := smtp.NewClient(conn, t.cfg.SMTPHost)
	if err != nil {
		t.log.Error("falha ao criar cliente SMTP", sl.Err(err))
		if closeErr := conn.Close(); closeErr != nil {
			t.log.Error("falha ao fechar conexão", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("falha ao criar cliente SMTP: %w", err)
	}

	tlsConfig := &tls.Config{
		ServerName: t.cfg.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}
	ok, _ := client.Extension("STARTTLS")
	if !ok {
		t.log.Error("servidor SMTP não suporta STARTTLS")
		if closeErr := client.Close(); closeErr != nil {
			t.log.Error("falha ao fechar cliente", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("servidor SMTP não suporta STARTTLS")
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		t.log.Error("falha ao iniciar TLS", sl.Err(err))
		if closeErr := client.Close(); closeErr != nil {
			t.log.Error("falha ao fechar cliente", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("falha ao iniciar TLS: %w", err)
	}

	auth := smtp.PlainAuth("", t.cfg.SMTPUser, t.cfg.SMTPPass, t.cfg.SMTPHost)
	if err = client.Auth(auth); err != nil {
		t.log.Error("falha na autenticação SMTP", sl.Err(err))
		if closeErr := client.Close(); closeErr != nil {
			t.log.Error("falha ao fechar cliente", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("falha na autenticação SMTP: %w", err)
	}

	return &smtpClientWrapper{client: client}, nil
}

// GetSMTPUser devolve o remetente configurado.
func (t *Transport) GetSMTPUser() string {
	return t.cfg.SMTPUser
}
