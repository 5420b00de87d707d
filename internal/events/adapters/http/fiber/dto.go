package fiber

// CreateEventRequest represents event creation payload
// @Description Event creation DTO
type CreateEventRequest struct {
	ID        string `json:"id" example:"5b0c1f7e-8d7a-4a57-9a0e-3d3f3f1b2c4d"`
	EventType string `json:"event_type" example:"chat_request_completed"`
	Metadata  string `json:"metadata" example:"{\"question\":\"...\",\"answer\":\"...\"}"`
	Timestamp string `json:"timestamp" example:"2024-01-05T14:07:00Z"`
}

type CreateEventResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type BulkCreateEventsRequest struct {
	Events []CreateEventRequest `json:"events"`
}

type BulkCreateEventsResponse struct {
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
}

// TimeframeRequest selects events by ISO-8601 bounds, both inclusive.
type TimeframeRequest struct {
	From string `json:"from" example:"2024-01-01T00:00:00Z"`
	To   string `json:"to" example:"2024-01-31T23:59:59Z"`
}

type EventResponse struct {
	ID        string `json:"id"`
	EventType string `json:"event_type"`
	Metadata  string `json:"metadata"`
	Timestamp string `json:"timestamp"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_event"`
	Message string `json:"message" example:"Event payload is invalid"`
}
