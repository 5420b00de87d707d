package engine

import (
	"fmt"
	"time"

	"kb-analytics-service/internal/analytics/core/domain"
)

const (
	hourKeyLayout    = "15"
	dayHourKeyLayout = "2006-01-02T15"
	dayKeyLayout     = "2006-01-02"
	hourLabelLayout  = "15:04"
)

// KeyFunc formats an instant into a bucket key.
type KeyFunc func(t time.Time) string

// DaySpan is the number of calendar days between r.Start and r.End in loc.
func DaySpan(r domain.Range, loc *time.Location) int {
	s, e := r.Start.In(loc), r.End.In(loc)
	sd := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	ed := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC)
	return int(ed.Sub(sd).Hours() / 24)
}

func ChooseGranularity(r domain.Range, loc *time.Location) domain.Granularity {
	if loc == nil {
		loc = time.UTC
	}
	if DaySpan(r, loc) < HourlyThresholdDays {
		return domain.Hourly
	}
	return domain.Daily
}

// BucketKeyFunc returns the key formatter for r at granularity g. Hourly keys
// are hour-of-day only while r stays within one calendar day; otherwise they
// carry the date so hours of different days never share a bucket.
func BucketKeyFunc(r domain.Range, g domain.Granularity, loc *time.Location) KeyFunc {
	if loc == nil {
		loc = time.UTC
	}
	layout := dayKeyLayout
	if g == domain.Hourly {
		layout = hourKeyLayout
		if DaySpan(r, loc) > 0 {
			layout = dayHourKeyLayout
		}
	}
	return func(t time.Time) string { return t.In(loc).Format(layout) }
}

func truncate(t time.Time, g domain.Granularity) time.Time {
	if g == domain.Hourly {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	}
	return startOfDay(t)
}

func advance(t time.Time, g domain.Granularity) time.Time {
	if g == domain.Hourly {
		return t.Add(time.Hour)
	}
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location())
}

func bucketLabel(t time.Time, g domain.Granularity, lc Locale) string {
	if g == domain.Hourly {
		return t.Format(hourLabelLayout)
	}
	return fmt.Sprintf("%02d.%s", t.Day(), lc.MonthWide(t.Month()))
}

// Sequence returns the contiguous, ascending buckets covering r. Empty
// buckets are included. Two consecutive instants mapping to the same key
// (a repeated wall-clock hour) yield one bucket.
func Sequence(r domain.Range, g domain.Granularity, loc *time.Location, lc Locale) []domain.Bucket {
	if loc == nil {
		loc = time.UTC
	}
	if lc.tr == nil {
		lc, _ = NewLocale("de")
	}
	key := BucketKeyFunc(r, g, loc)

	var out []domain.Bucket
	for cursor := truncate(r.Start.In(loc), g); !cursor.After(r.End); cursor = advance(cursor, g) {
		k := key(cursor)
		if n := len(out); n > 0 && out[n-1].Key == k {
			continue
		}
		out = append(out, domain.Bucket{Key: k, Label: bucketLabel(cursor, g, lc), Start: cursor})
	}
	return out
}
