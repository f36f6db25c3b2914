package entity

import "time"

// Event is a bookable gym session. NumOfParticipants is the remaining capacity and never goes negative.
type Event struct {
	ID                string
	Title             string
	Name              string
	Date              string
	NumOfParticipants int
	ModeOfPayment     string
	CreatedAt         time.Time
}

// HasSlots reports whether the snapshot still shows free capacity.
func (e *Event) HasSlots() bool { return e.NumOfParticipants > 0 }

// Registration is an append-only ledger entry written after a successful capacity decrement.
// EventTitle is the title observed at booking time.
type Registration struct {
	ID           string
	EventID      string
	EventTitle   string
	UserName     string
	UserEmail    string
	RegisteredAt time.Time
}
