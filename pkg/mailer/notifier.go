package mailer

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Message is one rendered email addressed to a single recipient.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Notifier delivers a message out of band. Callers treat delivery as best-effort.
type Notifier interface {
	Notify(ctx context.Context, m Message) error
}

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

var ErrNoRecipient = errors.New("message has no recipient")

// QueueNotifier hands messages to the email worker through RabbitMQ.
type QueueNotifier struct {
	pub Publisher
}

func NewQueueNotifier(pub Publisher) *QueueNotifier {
	return &QueueNotifier{pub: pub}
}

func (q *QueueNotifier) Notify(ctx context.Context, m Message) error {
	if m.To == "" {
		return ErrNoRecipient
	}
	return q.pub.PublishJSON(ctx, EmailJob{To: m.To, Subject: m.Subject, Text: m.Text, HTML: m.HTML})
}

// LogNotifier only records that a message would have been sent. The body is
// never logged since it can carry a password or reset token.
type LogNotifier struct {
	Logger *logrus.Logger
}

func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{Logger: logger}
}

func (l *LogNotifier) Notify(_ context.Context, m Message) error {
	if m.To == "" {
		return ErrNoRecipient
	}
	if l.Logger != nil {
		l.Logger.WithFields(logrus.Fields{"to": m.To, "subject": m.Subject}).Info("email delivery skipped (log transport)")
	}
	return nil
}

var (
	_ Notifier = (*QueueNotifier)(nil)
	_ Notifier = (*LogNotifier)(nil)
	_ Notifier = (*Mailgun)(nil)
)
