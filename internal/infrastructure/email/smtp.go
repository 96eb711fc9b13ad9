package email

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"loftwork/internal/domain/ticket"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	NotifyTo    string // Recipient of operational notices (resolution emails)
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

// SendResolutionNotice emails the operations inbox when a ticket
// reaches resolved. The context is accepted for interface symmetry;
// gomail dials synchronously.
func (s *SMTPEmailService) SendResolutionNotice(ctx context.Context, snapshot ticket.Snapshot) error {
	if s.config.NotifyTo == "" {
		return fmt.Errorf("no notify recipient configured")
	}

	subject := fmt.Sprintf("Ticket resolved: %s", snapshot.Title)
	safeTitle := html.EscapeString(snapshot.Title)
	safeDescription := html.EscapeString(snapshot.Description)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Ticket Resolved</h2>
			<p><strong>%s</strong> (#%d) has been marked resolved.</p>
			<p>%s</p>
			<p>Priority: %s</p>
			<p>Resolved at: %s</p>
		</body>
		</html>
	`, safeTitle, snapshot.ID, safeDescription, snapshot.Priority, snapshot.UpdatedAt.Format("2006-01-02 15:04:05"))

	plainBody := fmt.Sprintf(`
Ticket Resolved

%s (#%d) has been marked resolved.

%s

Priority: %s
Resolved at: %s
	`, snapshot.Title, snapshot.ID, snapshot.Description, snapshot.Priority, snapshot.UpdatedAt.Format("2006-01-02 15:04:05"))

	return s.sendEmail(s.config.NotifyTo, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromAddress)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
