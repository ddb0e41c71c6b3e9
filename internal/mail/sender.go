package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Sender delivers plain-text mail. The SMTP implementation is the real one;
// tests swap in a recorder.
type Sender interface {
	Send(to []string, subject, body string) error
}

type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

func (s *SMTPSender) Send(to []string, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	from := s.From
	if s.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.FromName, s.From)
	}
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	return smtp.SendMail(addr, auth, s.From, to, []byte(msg))
}

// Broadcast sends one message per recipient so a single bad address does not
// abort the rest. Failures are logged and counted, never returned.
func Broadcast(s Sender, l *zap.Logger, recipients []string, subject, body string) int {
	sent := 0
	for _, rcpt := range recipients {
		if err := s.Send([]string{rcpt}, subject, body); err != nil {
			l.Warn("broadcast mail failed", zap.String("to", rcpt), zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}
