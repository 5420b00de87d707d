package isotime

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	want := time.Date(2024, 1, 5, 13, 7, 0, 0, time.UTC)

	tests := []string{
		"2024-01-05T13:07:00Z",
		"2024-01-05T14:07:00+01:00",
		"2024-01-05T13:07:00.000Z",
		"2024-01-05T13:07:00",
		"2024-01-05T13:07",
		" 2024-01-05T13:07:00Z ",
	}
	for _, in := range tests {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("Parse(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParse_DateOnly(t *testing.T) {
	got, err := Parse("2024-01-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time %s", got)
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2024-13-01T00:00:00Z", "05.01.2024"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidTimestamp) {
			t.Fatalf("Parse(%q): expected ErrInvalidTimestamp, got %v", in, err)
		}
	}
}

func TestParseOptional(t *testing.T) {
	got, err := ParseOptional("  ")
	if err != nil || !got.IsZero() {
		t.Fatalf("expected zero time, got %s, %v", got, err)
	}
}
