package domain

import "time"

// QaLog is one answered question recorded for later review.
// OrgID zero means the log is not scoped to an organisation.
type QaLog struct {
	ID           string
	Question     string
	Answer       string
	StudyProgram string
	OrgID        int64
	CreatedAt    time.Time
}
