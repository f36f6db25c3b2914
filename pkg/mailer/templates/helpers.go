package templates

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/oksasatya/gym-backend/config"
)

// Brand carries the sender-side details stamped into every email.
type Brand struct {
	AppName        string
	CompanyName    string
	CompanyAddress string
	SupportURL     string
	ResetURL       string
}

func BrandFromConfig(cfg *config.Config) Brand {
	if cfg == nil {
		return Brand{}
	}
	return Brand{
		AppName:        cfg.AppName,
		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		SupportURL:     cfg.SupportURL,
		ResetURL:       cfg.ResetPasswordURL,
	}
}

// Option pattern
type Option func(*EmailData)

func WithPassword(pw string) Option { return func(d *EmailData) { d.Password = pw } }

func WithToken(token string) Option { return func(d *EmailData) { d.Token = token } }

func WithEvent(title, date string) Option {
	return func(d *EmailData) {
		d.EventTitle = title
		d.EventDate = date
	}
}

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04:05")
	}
}

func WithExpiresIn(dur time.Duration) Option {
	return func(d *EmailData) { d.ExpiresIn = humanizeDuration(dur) }
}

// NewEmailData builds template data for one recipient.
func NewEmailData(b Brand, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           strings.TrimSpace(name),
		Email:          email,
		AppName:        b.AppName,
		CompanyName:    b.CompanyName,
		CompanyAddress: b.CompanyAddress,
		SupportURL:     b.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	if d.Token != "" && b.ResetURL != "" {
		q := url.Values{"email": {email}, "token": {d.Token}}
		d.ResetURL = b.ResetURL + "?" + q.Encode()
	}
	return d
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "0 seconds"
	case d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	default:
		return plural(int(d.Round(time.Second)/time.Second), "second")
	}
}

func plural(n int, unit string) string {
	s := strconv.Itoa(n) + " " + unit
	if n != 1 {
		s += "s"
	}
	return s
}
