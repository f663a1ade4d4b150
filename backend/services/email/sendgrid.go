package emailsvc

import (
	"fmt"
	"log"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"lms/backend/config"
)

var (
	host     = "https://api.sendgrid.com"
	endpoint = "/v3/mail/send"
)

type sendgridService struct {
	key    string
	from   *sgmail.Email
	logger *log.Logger
}

var _ Service = (*sendgridService)(nil)

func NewSendgridService(cfg *config.Config, logger *log.Logger) Service {
	return &sendgridService{
		key:    cfg.SendgridAPIKey,
		from:   sgmail.NewEmail(cfg.MailFromName, cfg.MailFromAddr),
		logger: logger,
	}
}

func (svc *sendgridService) Send(msg Message) error {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToAddr))

	m := sgmail.NewV3Mail()
	m.SetFrom(svc.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", msg.TextBody))

	req := sendgrid.GetRequest(svc.key, endpoint, host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		svc.logger.Printf("sending email: %v", err)
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		svc.logger.Printf("sending email - status: %d - body: %s", res.StatusCode, res.Body)
		return fmt.Errorf("sendgrid status %d", res.StatusCode)
	}
	return nil
}
