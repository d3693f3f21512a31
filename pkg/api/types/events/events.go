package events

import "time"

type Detail struct {
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Entity    string    `json:"entity"`
}
