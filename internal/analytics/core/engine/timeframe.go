package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"kb-analytics-service/internal/analytics/core/domain"
)

var (
	ErrEmptyRange       = errors.New("cannot derive range from an empty event list")
	ErrUnknownTimeFrame = errors.New("unknown timeframe")
)

func ParseTimeFrame(s string) (domain.TimeFrame, error) {
	tf := domain.TimeFrame(strings.ToLower(strings.TrimSpace(s)))
	switch tf {
	case domain.TimeFrameToday, domain.TimeFrameWeek, domain.TimeFrameMonth, domain.TimeFrameTotal:
		return tf, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTimeFrame, s)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay is the last instant before the next local midnight.
func endOfDay(t time.Time) time.Time {
	next := time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location())
	return next.Add(-time.Nanosecond)
}

// ResolveRange maps a timeframe to a concrete range. For total the range is
// the min and max timestamp of events, whatever their order.
func ResolveRange(tf domain.TimeFrame, now time.Time, loc *time.Location, events []domain.Event) (domain.Range, error) {
	if loc == nil {
		loc = time.UTC
	}
	n := now.In(loc)

	switch tf {
	case domain.TimeFrameToday:
		return domain.Range{Start: startOfDay(n), End: endOfDay(n)}, nil
	case domain.TimeFrameWeek:
		return domain.Range{Start: n.AddDate(0, 0, -7), End: endOfDay(n)}, nil
	case domain.TimeFrameMonth:
		return domain.Range{Start: n.AddDate(0, 0, -30), End: endOfDay(n)}, nil
	case domain.TimeFrameTotal:
		if len(events) == 0 {
			return domain.Range{}, ErrEmptyRange
		}
		first, last := events[0].Timestamp, events[0].Timestamp
		for _, e := range events[1:] {
			if e.Timestamp.Before(first) {
				first = e.Timestamp
			}
			if e.Timestamp.After(last) {
				last = e.Timestamp
			}
		}
		return domain.Range{Start: first.In(loc), End: last.In(loc)}, nil
	default:
		return domain.Range{}, fmt.Errorf("%w: %q", ErrUnknownTimeFrame, tf)
	}
}

// FetchWindow is the window used to load events before aggregation. For
// total it is open from the Unix epoch up to now; the tight range is derived
// later from the fetched data.
func FetchWindow(tf domain.TimeFrame, now time.Time, loc *time.Location) (domain.Range, error) {
	if loc == nil {
		loc = time.UTC
	}
	if tf == domain.TimeFrameTotal {
		return domain.Range{Start: time.Unix(0, 0).In(loc), End: now.In(loc)}, nil
	}
	return ResolveRange(tf, now, loc, nil)
}
