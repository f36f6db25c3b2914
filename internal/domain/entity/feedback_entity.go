package entity

import "time"

type Feedback struct {
	ID          string
	Rating      int
	Comment     string
	SubmittedAt time.Time
}

type ContactMessage struct {
	ID          string
	Name        string
	Email       string
	Message     string
	SubmittedAt time.Time
}
