package mailer

import (
	"errors"
	"strings"

	tpl "github.com/oksasatya/gym-backend/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either the rendered Subject/Text/HTML is set, or Template names an embedded
// template that the worker renders with Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // welcome, password_reset, booking_confirmed, password_reissued
	Data     *tpl.EmailData `json:"data,omitempty"`
}

var ErrEmptyJob = errors.New("email job has no recipient or content")

// Resolve returns the message to deliver, rendering the template when one is named.
func (j EmailJob) Resolve() (Message, error) {
	to := strings.TrimSpace(j.To)
	if to == "" && j.Data != nil {
		to = j.Data.Email
	}
	if to == "" {
		return Message{}, ErrEmptyJob
	}
	if j.Template == "" {
		if j.Text == "" && j.HTML == "" {
			return Message{}, ErrEmptyJob
		}
		return Message{To: to, Subject: j.Subject, Text: j.Text, HTML: j.HTML}, nil
	}
	data := tpl.EmailData{Email: to}
	if j.Data != nil {
		data = *j.Data
	}
	subject, text, html, err := tpl.Render(j.Template, data)
	if err != nil {
		return Message{}, err
	}
	if j.Subject != "" {
		subject = j.Subject
	}
	return Message{To: to, Subject: subject, Text: text, HTML: html}, nil
}
