package mailer

import (
	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string `yaml:"host" envconfig:"SMTP_HOST" default:"localhost"`
	Port     int    `yaml:"port" envconfig:"SMTP_PORT" default:"587"`
	User     string `yaml:"user" envconfig:"SMTP_USER"`
	Password string `yaml:"password" envconfig:"SMTP_PASSWORD"`
	From     string `yaml:"from" envconfig:"SMTP_FROM" default:"Book Club Library <no-reply@bookclub.local>"`
}

// Mailer is the capability the notification flow consumes. One message,
// one result.
type Mailer interface {
	Send(to, subject, html string) error
}

type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg Config) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTP) Send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	return m.dialer.DialAndSend(msg)
}
