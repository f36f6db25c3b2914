package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-backend/pkg/mailer"
	tpl "github.com/oksasatya/gym-backend/pkg/mailer/templates"
)

// Mailer renders an embedded template and hands it to a Notifier.
// Delivery is best-effort: failures are logged and never returned to the caller.
type Mailer struct {
	Notifier mailer.Notifier
	Brand    tpl.Brand
	Logger   *logrus.Logger
	Timeout  time.Duration
}

func NewMailer(n mailer.Notifier, brand tpl.Brand, logger *logrus.Logger) *Mailer {
	return &Mailer{Notifier: n, Brand: brand, Logger: logger, Timeout: 5 * time.Second}
}

// Send renders template for the recipient and dispatches it. It reports whether the
// notifier accepted the message.
func (m *Mailer) Send(ctx context.Context, template, name, email string, opts ...tpl.Option) bool {
	if m == nil || m.Notifier == nil {
		return false
	}
	log := logEntry(m.Logger).WithFields(logrus.Fields{"template": template, "to": email})

	data := tpl.NewEmailData(m.Brand, name, email, opts...)
	subject, text, html, err := tpl.Render(template, data)
	if err != nil {
		log.WithError(err).Error("render email failed")
		return false
	}

	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.Timeout)
	defer cancel()
	if err := m.Notifier.Notify(c, mailer.Message{To: email, Subject: subject, Text: text, HTML: html}); err != nil {
		log.WithError(err).Warn("email dispatch failed")
		return false
	}
	return true
}

func logEntry(l *logrus.Logger) *logrus.Entry {
	if l == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logrus.NewEntry(l)
}
