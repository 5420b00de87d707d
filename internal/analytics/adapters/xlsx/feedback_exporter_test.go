package xlsx_test

import (
	"bytes"
	"testing"

	"kb-analytics-service/internal/analytics/adapters/xlsx"
	"kb-analytics-service/internal/analytics/core/domain"

	"github.com/xuri/excelize/v2"
)

func readRows(t *testing.T, body []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != "Feedback" {
		t.Fatalf("unexpected sheets %v", sheets)
	}
	rows, err := f.GetRows("Feedback")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	return rows
}

func TestExportFeedback_German(t *testing.T) {
	rows := []domain.FeedbackRow{
		{Date: "05.01.2024, 14:07", Kind: "positive", Question: "Wo?", Answer: "Hier."},
		{Date: "04.01.2024, 09:00", Kind: "negative", Question: "", Answer: ""},
	}

	body, err := xlsx.NewFeedbackExporter().ExportFeedback(rows, "de")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := readRows(t, body)
	if len(got) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(got))
	}
	if got[0][0] != "Datum" || got[0][3] != "Antwort" {
		t.Fatalf("unexpected header %v", got[0])
	}
	if got[1][0] != "05.01.2024, 14:07" || got[1][1] != "Positiv" || got[1][2] != "Wo?" || got[1][3] != "Hier." {
		t.Fatalf("unexpected first row %v", got[1])
	}
	if got[2][1] != "Negativ" {
		t.Fatalf("unexpected second row %v", got[2])
	}
}

func TestExportFeedback_EnglishAndEmpty(t *testing.T) {
	body, err := xlsx.NewFeedbackExporter().ExportFeedback(nil, "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := readRows(t, body)
	if len(got) != 1 {
		t.Fatalf("expected header only, got %d rows", len(got))
	}
	if got[0][0] != "Date" || got[0][1] != "Kind" {
		t.Fatalf("unexpected header %v", got[0])
	}
}

func TestExportFeedback_UnknownKindKept(t *testing.T) {
	rows := []domain.FeedbackRow{{Date: "d", Kind: "neutral"}}

	body, err := xlsx.NewFeedbackExporter().ExportFeedback(rows, "de")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := readRows(t, body); got[1][1] != "neutral" {
		t.Fatalf("expected raw kind, got %v", got[1])
	}
}
