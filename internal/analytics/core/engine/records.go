package engine

import (
	"sort"
	"strings"
	"time"

	"kb-analytics-service/internal/analytics/core/domain"

	"github.com/tidwall/gjson"
)

const feedbackKindPrefix = FeedbackMarker + "_"

// ParseQuestionAnswer reads the question and answer fields of an event's
// metadata. ok is false when the metadata is not valid JSON; both fields are
// empty then.
func ParseQuestionAnswer(metadata string) (question, answer string, ok bool) {
	if !gjson.Valid(metadata) {
		return "", "", false
	}
	return field(metadata, "question"), field(metadata, "answer"), true
}

func field(doc, path string) string {
	r := gjson.Get(doc, path)
	if !r.Exists() || r.Type == gjson.Null {
		return ""
	}
	return r.String()
}

func FormatFeedback(e domain.Event, loc *time.Location, lc Locale) domain.FeedbackRow {
	q, a, _ := ParseQuestionAnswer(e.Metadata)
	return domain.FeedbackRow{
		Date:     lc.DateTime(e.Timestamp.In(loc)),
		Kind:     strings.TrimPrefix(e.EventType, feedbackKindPrefix),
		Question: q,
		Answer:   a,
	}
}

// FormatFeedbackRows formats events newest first. Input is not reordered.
func FormatFeedbackRows(events []domain.Event, loc *time.Location, lc Locale) []domain.FeedbackRow {
	if loc == nil {
		loc = time.UTC
	}
	sorted := make([]domain.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	rows := make([]domain.FeedbackRow, 0, len(sorted))
	for _, e := range sorted {
		rows = append(rows, FormatFeedback(e, loc, lc))
	}
	return rows
}

func FormatQaLog(id string, createdAt time.Time, question, answer, studyProgram string, loc *time.Location, lc Locale) domain.QaRow {
	if loc == nil {
		loc = time.UTC
	}
	return domain.QaRow{
		ID:           id,
		Date:         lc.DateTime(createdAt.In(loc)),
		Question:     question,
		Answer:       answer,
		StudyProgram: studyProgram,
	}
}
