package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/arkade-store/stockroom/pkg/service/mail"
)

// Mail holds CLI flags for SMTP configuration. Without an SMTP host the
// mail service stays disabled and alert emails are skipped.
type Mail struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// Flags returns CLI flags for mail configuration
func (m *Mail) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "smtp-host",
			Category:    "Mail",
			Usage:       "SMTP server host (empty disables outgoing mail)",
			Sources:     cli.EnvVars("STOCKROOM_SMTP_HOST"),
			Destination: &m.host,
		},
		&cli.IntFlag{
			Name:        "smtp-port",
			Category:    "Mail",
			Usage:       "SMTP server port",
			Value:       587,
			Sources:     cli.EnvVars("STOCKROOM_SMTP_PORT"),
			Destination: &m.port,
		},
		&cli.StringFlag{
			Name:        "smtp-username",
			Category:    "Mail",
			Usage:       "SMTP username",
			Sources:     cli.EnvVars("STOCKROOM_SMTP_USERNAME"),
			Destination: &m.username,
		},
		&cli.StringFlag{
			Name:        "smtp-password",
			Category:    "Mail",
			Usage:       "SMTP password",
			Sources:     cli.EnvVars("STOCKROOM_SMTP_PASSWORD"),
			Destination: &m.password,
		},
		&cli.StringFlag{
			Name:        "mail-from",
			Category:    "Mail",
			Usage:       "Sender address for outgoing mail",
			Sources:     cli.EnvVars("STOCKROOM_MAIL_FROM"),
			Destination: &m.from,
		},
	}
}

// IsConfigured reports whether an SMTP host has been set
func (m *Mail) IsConfigured() bool {
	return m.host != ""
}

// Configure builds the mail service, or returns nil when mail is disabled
func (m *Mail) Configure() (mail.Service, error) {
	if !m.IsConfigured() {
		return nil, nil
	}
	if m.from == "" {
		return nil, goerr.New("mail-from is required when smtp-host is set")
	}

	svc, err := mail.New(m.host, m.port, m.username, m.password, m.from)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure mail service")
	}
	return svc, nil
}
