package kindle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

// Sender mails rendered documents as attachments
type Sender struct {
	config *Config
	logger *logrus.Logger
	dial   func(ctx context.Context, msg *mail.Msg) error
}

// NewSender creates a Sender for the relay in config
func NewSender(config *Config) (*Sender, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Sender{
		config: config,
		logger: config.Logger,
	}
	s.dial = s.dialAndSend
	return s, nil
}

// Send attaches the file at path and mails it to the address
func (s *Sender) Send(ctx context.Context, to, path string) error {
	log := s.logger.WithFields(logrus.Fields{
		"method": "Send",
		"to":     to,
		"file":   filepath.Base(path),
		"host":   s.config.Host,
	})

	msg, err := s.BuildMessage(to, path)
	if err != nil {
		log.WithError(err).Error("Failed to build message")
		return err
	}

	log.Debug("Sending document")
	if err := s.dial(ctx, msg); err != nil {
		log.WithError(err).Error("Failed to send document")
		return fmt.Errorf("failed to send mail: %w", err)
	}

	log.Debug("Document sent")
	return nil
}

// BuildMessage assembles the message without sending it
func (s *Sender) BuildMessage(to, path string) (*mail.Msg, error) {
	if !ValidAddress(to) {
		return nil, fmt.Errorf("invalid recipient address %q", to)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("attachment not readable: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(s.config.From); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(s.config.Subject)
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("Sent with twindle: %s", filepath.Base(path)))
	msg.AttachFile(path)
	return msg, nil
}

func (s *Sender) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(s.config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.config.Username),
		mail.WithPassword(s.config.Password),
		mail.WithTimeout(s.config.Timeout),
	}
	if s.config.Port == DefaultPort {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(s.config.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}
