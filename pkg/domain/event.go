package domain

import "time"

// Event is one append-only audit record.
//
// Events are written by every mutating use case and never updated or
// deleted by the application.
type Event struct {
	Action    string
	Timestamp time.Time
	User      string
	Entity    string
}
