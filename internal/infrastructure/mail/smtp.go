// Package mail delivers notification emails over SMTP.
package mail

import (
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"
)

const sendTimeout = 15 * time.Second

var feedbackRequestBody = template.Must(template.New("feedback-request").Parse(`Dear {{.ManagerName}},

{{.EmployeeName}} has requested feedback from you through the Feedback App.

Please log in to the feedback system to provide your feedback:
{{.LoginURL}}

Your feedback helps in professional growth and development.

Best regards,
Feedback App Team
`))

// Config holds the SMTP relay settings. From defaults to Username.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	LoginURL string
}

// Gateway sends feedback-request emails through an SMTP relay using STARTTLS.
type Gateway struct {
	cfg Config
	log zerolog.Logger
}

func NewGateway(cfg Config, log zerolog.Logger) *Gateway {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &Gateway{cfg: cfg, log: log}
}

// Configured reports whether SMTP credentials are present.
func (g *Gateway) Configured() bool {
	return g.cfg.Username != "" && g.cfg.Password != ""
}

// SendFeedbackRequest emails managerEmail on behalf of employeeName. Every
// failure is logged and reported as false.
func (g *Gateway) SendFeedbackRequest(ctx context.Context, managerEmail, employeeName, managerName string) bool {
	if !g.Configured() {
		g.log.Warn().Msg("SMTP credentials not configured")
		return false
	}

	msg, err := g.feedbackRequest(managerEmail, employeeName, managerName)
	if err != nil {
		g.log.Error().Err(err).Str("to", managerEmail).Msg("failed to build feedback request email")
		return false
	}

	client, err := gomail.NewClient(g.cfg.Host,
		gomail.WithPort(g.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithUsername(g.cfg.Username),
		gomail.WithPassword(g.cfg.Password),
		gomail.WithTimeout(sendTimeout),
	)
	if err != nil {
		g.log.Error().Err(err).Msg("failed to create SMTP client")
		return false
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := client.DialAndSendWithContext(sendCtx, msg); err != nil {
		g.log.Error().Err(err).Str("to", managerEmail).Msg("failed to send feedback request email")
		return false
	}

	g.log.Info().Str("to", managerEmail).Msg("feedback request email sent")
	return true
}

func (g *Gateway) feedbackRequest(to, employeeName, managerName string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(g.cfg.From); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("set to: %w", err)
	}
	msg.Subject("Feedback Request from " + employeeName)

	data := struct {
		ManagerName  string
		EmployeeName string
		LoginURL     string
	}{managerName, employeeName, g.cfg.LoginURL}
	if err := msg.SetBodyTextTemplate(feedbackRequestBody, data); err != nil {
		return nil, fmt.Errorf("set body: %w", err)
	}
	return msg, nil
}
