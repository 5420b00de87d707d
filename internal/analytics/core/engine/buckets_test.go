package engine_test

import (
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"kb-analytics-service/internal/analytics/core/domain"
	"kb-analytics-service/internal/analytics/core/engine"
)

func mustLocale(t *testing.T, tag string) engine.Locale {
	t.Helper()
	lc, err := engine.NewLocale(tag)
	if err != nil {
		t.Fatalf("locale %s: %v", tag, err)
	}
	return lc
}

func assertStrictlyAscending(t *testing.T, buckets []domain.Bucket) {
	t.Helper()
	seen := map[string]bool{}
	for i, b := range buckets {
		if seen[b.Key] {
			t.Fatalf("duplicate bucket key %q", b.Key)
		}
		seen[b.Key] = true
		if i > 0 && !buckets[i-1].Start.Before(b.Start) {
			t.Fatalf("buckets not ascending at %d: %s then %s", i, buckets[i-1].Start, b.Start)
		}
	}
}

// ------------------------------------------------------------
// GRANULARITY
// ------------------------------------------------------------

func TestChooseGranularity(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  domain.Granularity
	}{
		{"same day", "2024-01-01T00:00:00Z", "2024-01-01T23:59:00Z", domain.Hourly},
		{"across midnight", "2024-01-01T23:00:00Z", "2024-01-02T01:00:00Z", domain.Hourly},
		{"two calendar days", "2024-01-01T23:00:00Z", "2024-01-03T00:30:00Z", domain.Daily},
		{"one week", "2024-01-01T00:00:00Z", "2024-01-08T00:00:00Z", domain.Daily},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.Range{Start: at(tt.start), End: at(tt.end)}
			if got := engine.ChooseGranularity(r, time.UTC); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

// ------------------------------------------------------------
// SEQUENCE
// ------------------------------------------------------------

func TestSequence_HourlySameDay(t *testing.T) {
	r := domain.Range{Start: at("2024-01-01T00:00:00Z"), End: at("2024-01-01T23:59:00Z")}

	buckets := engine.Sequence(r, domain.Hourly, time.UTC, mustLocale(t, "de"))
	if len(buckets) != 24 {
		t.Fatalf("expected 24 buckets, got %d", len(buckets))
	}
	for i, b := range buckets {
		if want := fmt.Sprintf("%02d", i); b.Key != want {
			t.Fatalf("bucket %d: expected key %s, got %s", i, want, b.Key)
		}
		if want := fmt.Sprintf("%02d:00", i); b.Label != want {
			t.Fatalf("bucket %d: expected label %s, got %s", i, want, b.Label)
		}
	}
	assertStrictlyAscending(t, buckets)
}

func TestSequence_Daily(t *testing.T) {
	r := domain.Range{Start: at("2024-01-01T00:00:00Z"), End: at("2024-01-08T00:00:00Z")}

	buckets := engine.Sequence(r, domain.Daily, time.UTC, mustLocale(t, "de"))
	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(buckets))
	}
	if buckets[0].Key != "2024-01-01" || buckets[7].Key != "2024-01-08" {
		t.Fatalf("unexpected bracket keys: %s .. %s", buckets[0].Key, buckets[7].Key)
	}
	if buckets[0].Label != "01.Januar" {
		t.Fatalf("expected label 01.Januar, got %s", buckets[0].Label)
	}
	assertStrictlyAscending(t, buckets)
}

func TestSequence_DailyLabelLocale(t *testing.T) {
	r := domain.Range{Start: at("2024-03-05T10:00:00Z"), End: at("2024-03-07T10:00:00Z")}

	buckets := engine.Sequence(r, domain.Daily, time.UTC, mustLocale(t, "en"))
	if buckets[0].Label != "05.March" {
		t.Fatalf("expected 05.March, got %s", buckets[0].Label)
	}
}

func TestSequence_BracketsRange(t *testing.T) {
	r := domain.Range{Start: at("2024-01-03T15:30:00Z"), End: at("2024-01-10T23:59:59Z")}
	g := engine.ChooseGranularity(r, time.UTC)
	key := engine.BucketKeyFunc(r, g, time.UTC)

	buckets := engine.Sequence(r, g, time.UTC, mustLocale(t, "de"))
	if buckets[0].Key != key(r.Start) {
		t.Fatalf("first bucket %s does not contain start %s", buckets[0].Key, key(r.Start))
	}
	if last := buckets[len(buckets)-1]; last.Key != key(r.End) {
		t.Fatalf("last bucket %s does not contain end %s", last.Key, key(r.End))
	}
}

func TestSequence_HourlyAcrossMidnightKeepsDaysApart(t *testing.T) {
	r := domain.Range{Start: at("2024-01-01T00:00:00Z"), End: at("2024-01-02T23:59:00Z")}

	buckets := engine.Sequence(r, domain.Hourly, time.UTC, mustLocale(t, "de"))
	if len(buckets) != 48 {
		t.Fatalf("expected 48 buckets, got %d", len(buckets))
	}
	if buckets[0].Key != "2024-01-01T00" || buckets[24].Key != "2024-01-02T00" {
		t.Fatalf("unexpected keys: %s, %s", buckets[0].Key, buckets[24].Key)
	}
	if buckets[24].Label != "00:00" {
		t.Fatalf("expected hour label, got %s", buckets[24].Label)
	}
	assertStrictlyAscending(t, buckets)
}

func TestSequence_Restartable(t *testing.T) {
	r := domain.Range{Start: at("2024-01-01T05:10:00Z"), End: at("2024-01-01T09:00:00Z")}
	lc := mustLocale(t, "de")

	a := engine.Sequence(r, domain.Hourly, time.UTC, lc)
	b := engine.Sequence(r, domain.Hourly, time.UTC, lc)
	if len(a) != 5 || len(a) != len(b) {
		t.Fatalf("expected 5 buckets twice, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("bucket %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSequence_DSTFallBackMergesRepeatedHour(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	now := time.Date(2024, 10, 27, 12, 0, 0, 0, berlin)
	r, err := engine.ResolveRange(domain.TimeFrameToday, now, berlin, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buckets := engine.Sequence(r, engine.ChooseGranularity(r, berlin), berlin, mustLocale(t, "de"))
	if len(buckets) != 24 {
		t.Fatalf("expected 24 buckets on fall-back day, got %d", len(buckets))
	}
	assertStrictlyAscending(t, buckets)
}

func TestSequence_DSTSpringForward(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, berlin)
	r, _ := engine.ResolveRange(domain.TimeFrameToday, now, berlin, nil)

	buckets := engine.Sequence(r, domain.Hourly, berlin, mustLocale(t, "de"))
	if len(buckets) != 23 {
		t.Fatalf("expected 23 buckets on spring-forward day, got %d", len(buckets))
	}
}
