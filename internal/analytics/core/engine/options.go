// Package engine turns a flat list of timestamped events into dashboard
// summaries and chart-ready series. Every function here is pure: the same
// inputs always produce the same outputs and nothing is retained between calls.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"kb-analytics-service/internal/analytics/core/domain"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
)

// Event type markers and the granularity cutoff.
const (
	FeedbackMarker      = "chat_feedback"
	FeedbackPositiveEvt = "chat_feedback_positive"
	FeedbackNegativeEvt = "chat_feedback_negative"
	ChatEvent           = "chat_request_completed"
	MailSensitive       = "mail_classified_sensitive"
	MailAuto            = "mail_classified_nonsensitive"

	HourlyThresholdDays = 2

	// fillAlpha is appended to a #RRGGBB stroke color to get the fill color.
	fillAlpha = "33"
)

var ErrUnknownLocale = errors.New("unknown display locale")

// Locale carries the month names and the short date-time layout used for
// labels and table dates.
type Locale struct {
	tag            string
	tr             locales.Translator
	dateTimeLayout string
}

func NewLocale(tag string) (Locale, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "de", "":
		return Locale{tag: "de", tr: de.New(), dateTimeLayout: "02.01.2006, 15:04"}, nil
	case "en":
		return Locale{tag: "en", tr: en.New(), dateTimeLayout: "1/2/2006, 3:04 PM"}, nil
	default:
		return Locale{}, fmt.Errorf("%w: %q", ErrUnknownLocale, tag)
	}
}

func (l Locale) Tag() string { return l.tag }

func (l Locale) MonthWide(m time.Month) string { return l.tr.MonthWide(m) }

// DateTime formats t with the locale's short date-time layout.
func (l Locale) DateTime(t time.Time) string { return t.Format(l.dateTimeLayout) }

type SeriesStyle struct {
	Name  string
	Color string
}

// Palette holds the identity metadata handed to the chart renderer.
type Palette struct {
	Series    map[domain.Category]SeriesStyle
	PieLabels [2]string
	PieColors [2]string
}

func DefaultPalette() Palette {
	return Palette{
		Series: map[domain.Category]SeriesStyle{
			domain.ChatCompleted: {Name: "Chats", Color: "#779EC4"},
			domain.MailSensitive: {Name: "Sensible Mails", Color: "#EB5181"},
			domain.MailAuto:      {Name: "Automatische Mail-Antworten", Color: "#4d4c8a"},
		},
		PieLabels: [2]string{"Positiv", "Negativ"},
		PieColors: [2]string{"#43a047", "#d32f2f"},
	}
}

func (p Palette) style(c domain.Category) SeriesStyle {
	if s, ok := p.Series[c]; ok {
		return s
	}
	return SeriesStyle{Name: c.String()}
}

// Options configure a Build pass. The zero value uses UTC, the German locale
// and the default palette.
type Options struct {
	Location *time.Location
	Locale   Locale
	Palette  Palette
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Locale.tr == nil {
		o.Locale, _ = NewLocale("de")
	}
	if o.Palette.Series == nil {
		o.Palette = DefaultPalette()
	}
	return o
}
