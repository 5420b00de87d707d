package xlsx

import (
	"fmt"

	"kb-analytics-service/internal/analytics/core/domain"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Feedback"

type columns struct {
	headers [4]string
	kinds   map[string]string
}

var columnsByLocale = map[string]columns{
	"de": {
		headers: [4]string{"Datum", "Art", "Frage", "Antwort"},
		kinds:   map[string]string{"positive": "Positiv", "negative": "Negativ"},
	},
	"en": {
		headers: [4]string{"Date", "Kind", "Question", "Answer"},
		kinds:   map[string]string{"positive": "Positive", "negative": "Negative"},
	},
}

var colWidths = [4]float64{20, 12, 60, 80}

// FeedbackExporter writes the feedback table as a single-sheet workbook.
type FeedbackExporter struct{}

func NewFeedbackExporter() *FeedbackExporter {
	return &FeedbackExporter{}
}

func (e *FeedbackExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *FeedbackExporter) FileExtension() string { return "xlsx" }

func (e *FeedbackExporter) ExportFeedback(rows []domain.FeedbackRow, localeTag string) ([]byte, error) {
	cols, ok := columnsByLocale[localeTag]
	if !ok {
		cols = columnsByLocale["de"]
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range cols.headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for r, row := range rows {
		kind := row.Kind
		if label, ok := cols.kinds[kind]; ok {
			kind = label
		}
		values := [4]string{row.Date, kind, row.Question, row.Answer}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellStr(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}

	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
