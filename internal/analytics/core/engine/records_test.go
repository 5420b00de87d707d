package engine_test

import (
	"testing"
	"time"

	"kb-analytics-service/internal/analytics/core/domain"
	"kb-analytics-service/internal/analytics/core/engine"
)

func TestParseQuestionAnswer(t *testing.T) {
	tests := []struct {
		name     string
		metadata string
		q, a     string
		ok       bool
	}{
		{"valid", `{"question":"Wann?","answer":"Morgen"}`, "Wann?", "Morgen", true},
		{"missing answer", `{"question":"Wann?"}`, "Wann?", "", true},
		{"null fields", `{"question":null,"answer":null}`, "", "", true},
		{"not an object", `[1,2,3]`, "", "", true},
		{"not json", "not json", "", "", false},
		{"empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, a, ok := engine.ParseQuestionAnswer(tt.metadata)
			if q != tt.q || a != tt.a || ok != tt.ok {
				t.Fatalf("got (%q, %q, %v), want (%q, %q, %v)", q, a, ok, tt.q, tt.a, tt.ok)
			}
		})
	}
}

func TestFormatFeedback(t *testing.T) {
	e := domain.Event{
		EventType: engine.FeedbackPositiveEvt,
		Timestamp: at("2024-01-05T14:07:00Z"),
		Metadata:  `{"question":"Wo ist die Bibliothek?","answer":"Im Hauptgebäude."}`,
	}

	row := engine.FormatFeedback(e, time.UTC, mustLocale(t, "de"))
	if row.Date != "05.01.2024, 14:07" {
		t.Fatalf("unexpected date %q", row.Date)
	}
	if row.Kind != "positive" {
		t.Fatalf("expected kind positive, got %q", row.Kind)
	}
	if row.Question != "Wo ist die Bibliothek?" || row.Answer != "Im Hauptgebäude." {
		t.Fatalf("unexpected question/answer: %+v", row)
	}

	row = engine.FormatFeedback(e, time.UTC, mustLocale(t, "en"))
	if row.Date != "1/5/2024, 2:07 PM" {
		t.Fatalf("unexpected en date %q", row.Date)
	}
}

func TestFormatFeedbackRows_MalformedMetadataDoesNotAbort(t *testing.T) {
	events := []domain.Event{
		{EventType: engine.FeedbackNegativeEvt, Timestamp: at("2024-01-05T10:00:00Z"), Metadata: "not json"},
		{EventType: engine.FeedbackPositiveEvt, Timestamp: at("2024-01-05T11:00:00Z"), Metadata: `{"question":"q","answer":"a"}`},
	}

	rows := engine.FormatFeedbackRows(events, time.UTC, mustLocale(t, "de"))
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	// newest first
	if rows[0].Kind != "positive" || rows[0].Question != "q" || rows[0].Answer != "a" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Kind != "negative" || rows[1].Question != "" || rows[1].Answer != "" {
		t.Fatalf("expected empty fields for malformed metadata, got %+v", rows[1])
	}

	if events[0].Metadata != "not json" {
		t.Fatalf("input reordered")
	}
}

func TestFormatQaLog(t *testing.T) {
	row := engine.FormatQaLog("id-1", at("2024-01-05T14:07:00Z"), "q", "a", "informatics", time.UTC, mustLocale(t, "de"))
	if row.Date != "05.01.2024, 14:07" || row.ID != "id-1" || row.StudyProgram != "informatics" {
		t.Fatalf("unexpected row: %+v", row)
	}
}
