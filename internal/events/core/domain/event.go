package domain

import "time"

// Event is a persisted event_logs row. Metadata is stored as received,
// usually a JSON object encoded as a string.
type Event struct {
	ID        string
	EventType string
	Metadata  string
	EventTime time.Time
}
