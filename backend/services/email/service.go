// Package emailsvc sends notification mail through SendGrid, falling back
// to console output when no API key is configured.
package emailsvc

import (
	"log"

	"lms/backend/config"
)

type Message struct {
	ToName   string
	ToAddr   string
	Subject  string
	TextBody string
}

type Service interface {
	Send(msg Message) error
}

func New(cfg *config.Config, logger *log.Logger) Service {
	if cfg.SendgridAPIKey != "" {
		return NewSendgridService(cfg, logger)
	}
	return NewConsoleService(cfg, logger)
}
