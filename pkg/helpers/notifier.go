package helpers

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-backend/config"
	"github.com/oksasatya/gym-backend/pkg/mailer"
)

// NotifierFromConfig picks the mail transport from MAIL_TRANSPORT.
// Any transport that cannot be set up degrades to the log transport. The returned func releases it.
func NotifierFromConfig(cfg *config.Config, logger *logrus.Logger) (mailer.Notifier, func()) {
	noop := func() {}
	switch cfg.MailTransport {
	case config.MailTransportQueue:
		pub, err := NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; emails will only be logged")
			return mailer.NewLogNotifier(logger), noop
		}
		logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("emails are queued for the worker")
		return mailer.NewQueueNotifier(pub), pub.Close
	case config.MailTransportDirect:
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			logger.Warn("mailgun not configured; emails will only be logged")
			return mailer.NewLogNotifier(logger), noop
		}
		return mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender), noop
	default:
		return mailer.NewLogNotifier(logger), noop
	}
}
