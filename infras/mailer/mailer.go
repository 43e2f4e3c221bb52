package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"booktable/config"
	"booktable/infras/otel"
	"booktable/shared/constant"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

var (
	ErrNotConfigured = errors.New("smtp host is not configured")
	ErrNoRecipient   = errors.New("message has no recipient")
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, message Message) (err error)
}

type mailerImpl struct {
	cfg  *config.Config
	otel otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Mailer {
	return &mailerImpl{
		cfg:  cfg,
		otel: otl,
	}
}

func (m *mailerImpl) Send(ctx context.Context, message Message) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	smtp := m.cfg.Mail.SMTP
	if smtp.Host == "" {
		return ErrNotConfigured
	}

	msg, err := buildMessage(m.cfg, message)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(smtp.Host, clientOptions(m.cfg)...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create SMTP client.")

		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Error().Err(err).Str("to", message.To).Msg("Failed to send email.")

		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("to", message.To).Str("subject", message.Subject).Msg("Email sent.")

	return nil
}

func clientOptions(cfg *config.Config) []mail.Option {
	smtp := cfg.Mail.SMTP

	opts := []mail.Option{mail.WithPort(smtp.Port)}

	if smtp.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(smtp.Username),
			mail.WithPassword(smtp.Password),
		)
	}

	if smtp.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	return opts
}

func buildMessage(cfg *config.Config, message Message) (*mail.Msg, error) {
	if message.To == "" {
		return nil, ErrNoRecipient
	}

	msg := mail.NewMsg()

	if err := msg.FromFormat(cfg.Notification.SenderName, cfg.Mail.SMTP.From); err != nil {
		return nil, fmt.Errorf("failed to set sender: %w", err)
	}

	if err := msg.To(message.To); err != nil {
		return nil, fmt.Errorf("failed to set recipient: %w", err)
	}

	msg.Subject(message.Subject)
	msg.SetBodyString(mail.TypeTextHTML, message.HTML)

	return msg, nil
}
