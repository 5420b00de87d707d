package engine_test

import (
	"errors"
	"testing"
	"time"

	"kb-analytics-service/internal/analytics/core/domain"
	"kb-analytics-service/internal/analytics/core/engine"
)

// ------------------------------------------------------------
// FULL PIPELINE
// ------------------------------------------------------------

func TestBuild_Week(t *testing.T) {
	now := at("2024-01-10T15:30:00Z")
	events := []domain.Event{
		ev(engine.ChatEvent, "2024-01-04T09:00:00Z"),
		ev(engine.ChatEvent, "2024-01-04T10:00:00Z"),
		ev(engine.MailSensitive, "2024-01-09T10:00:00Z"),
		ev(engine.MailAuto, "2024-01-10T08:00:00Z"),
		ev(engine.FeedbackPositiveEvt, "2024-01-06T09:00:00Z"),
	}

	d, err := engine.Build(events, domain.TimeFrameWeek, now, engine.Options{Location: time.UTC})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Range == nil {
		t.Fatalf("expected resolved range")
	}
	if d.Line == nil {
		t.Fatalf("expected line chart")
	}
	if d.Line.Granularity != domain.Daily {
		t.Fatalf("expected daily granularity, got %s", d.Line.Granularity)
	}
	if len(d.Line.Labels) != 8 {
		t.Fatalf("expected 8 daily buckets, got %d", len(d.Line.Labels))
	}
	// 2024-01-04 is the second bucket
	if d.Line.Series[0].Values[1] != 2 {
		t.Fatalf("expected 2 chats on 2024-01-04, got %v", d.Line.Series[0].Values)
	}
	if d.Summary.PositivePercent != 100 {
		t.Fatalf("expected 100%% positive, got %d", d.Summary.PositivePercent)
	}
	if d.Pie.Values != [2]int{1, 0} {
		t.Fatalf("unexpected pie values %v", d.Pie.Values)
	}
	if len(d.Feedback) != 1 {
		t.Fatalf("expected 1 feedback row, got %d", len(d.Feedback))
	}
}

func TestBuild_TotalDerivesRangeFromData(t *testing.T) {
	events := []domain.Event{
		ev(engine.ChatEvent, "2024-01-05T14:00:00Z"),
		ev(engine.ChatEvent, "2024-01-03T10:00:00Z"),
		ev(engine.ChatEvent, "2024-01-04T09:00:00Z"),
	}

	d, err := engine.Build(events, domain.TimeFrameTotal, at("2024-06-01T00:00:00Z"), engine.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Range.Start.Equal(at("2024-01-03T10:00:00Z")) || !d.Range.End.Equal(at("2024-01-05T14:00:00Z")) {
		t.Fatalf("unexpected range %+v", d.Range)
	}
	if d.Line.Granularity != domain.Daily || len(d.Line.Labels) != 3 {
		t.Fatalf("expected 3 daily buckets, got %s/%d", d.Line.Granularity, len(d.Line.Labels))
	}
}

func TestBuild_TotalEmptyFallsBackToEmptyChart(t *testing.T) {
	d, err := engine.Build(nil, domain.TimeFrameTotal, time.Now(), engine.Options{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if d.Range != nil || d.Line != nil {
		t.Fatalf("expected empty chart, got range=%v line=%v", d.Range, d.Line)
	}
	if d.Summary.TotalEvents != 0 || d.Summary.PositivePercent != 0 {
		t.Fatalf("unexpected summary %+v", d.Summary)
	}
}

func TestBuild_OnlyFeedback(t *testing.T) {
	events := []domain.Event{ev(engine.FeedbackNegativeEvt, "2024-01-10T09:00:00Z")}

	d, err := engine.Build(events, domain.TimeFrameToday, at("2024-01-10T12:00:00Z"), engine.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Line != nil {
		t.Fatalf("expected no line chart without usage events")
	}
	if d.Pie.Values != [2]int{0, 1} {
		t.Fatalf("unexpected pie values %v", d.Pie.Values)
	}
}

func TestBuild_UnknownTimeFrame(t *testing.T) {
	_, err := engine.Build(nil, "decade", time.Now(), engine.Options{})
	if !errors.Is(err, engine.ErrUnknownTimeFrame) {
		t.Fatalf("expected ErrUnknownTimeFrame, got %v", err)
	}
}
