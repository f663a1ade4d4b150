package emailsvc

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"lms/backend/config"
)

type consoleService struct {
	fromName string
	fromAddr string
	logger   *log.Logger

	mu   sync.Mutex
	sent []Message
}

var _ Service = (*consoleService)(nil)

func NewConsoleService(cfg *config.Config, logger *log.Logger) Service {
	return &consoleService{
		fromName: cfg.MailFromName,
		fromAddr: cfg.MailFromAddr,
		logger:   logger,
	}
}

func (svc *consoleService) Send(msg Message) error {
	body := new(strings.Builder)
	fmt.Fprintf(body, "From: %s <%s>\r\n", svc.fromName, svc.fromAddr)
	fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(body, "To: %s <%s>\r\n", msg.ToName, msg.ToAddr)
	fmt.Fprintf(body, "Subject: %s\r\n\r\n", msg.Subject)
	fmt.Fprintf(body, "%s\r\n", msg.TextBody)

	svc.logger.Println(body.String())

	svc.mu.Lock()
	svc.sent = append(svc.sent, msg)
	svc.mu.Unlock()
	return nil
}

// Sent returns a copy of everything delivered to the console sink.
func (svc *consoleService) Sent() []Message {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return append([]Message(nil), svc.sent...)
}
