// Package parser turns a review export into rows, groups and styled blocks.
package parser

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/config"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/models"
	"github.com/xuri/excelize/v2"
)

// SheetRecords returns the raw cell grid of a sheet. An empty sheetName
// selects the first sheet of the workbook.
func SheetRecords(f *excelize.File, sheetName string) ([][]string, error) {
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheetName = sheets[0]
	}
	return f.GetRows(sheetName, excelize.Options{RawCellValue: true})
}

// CSVRecords reads every record of a CSV export. Rows may have differing
// lengths and a leading byte order mark is dropped.
func CSVRecords(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

// Header holds resolved column positions keyed by logical field name.
type Header struct {
	index map[string]int
}

// Has reports whether the field was found.
func (h Header) Has(field string) bool {
	_, ok := h.index[field]
	return ok
}

// value returns the cell for field, or "" when the column is absent or the row is short.
func (h Header) value(record []string, field string) string {
	i, ok := h.index[field]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// ResolveHeader locates every configured field in the header row. It returns
// the missing required fields in header order.
func ResolveHeader(header []string, cols config.Columns) (Header, []string) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, dup := positions[key]; !dup {
			positions[key] = i
		}
	}

	h := Header{index: make(map[string]int)}
	fields := append(append([]string{}, config.RequiredFields...), config.OptionalFields...)
	for _, field := range fields {
		for _, alias := range cols.Aliases(field) {
			if i, ok := positions[strings.ToLower(strings.TrimSpace(alias))]; ok {
				h.index[field] = i
				break
			}
		}
	}

	var missing []string
	for _, field := range config.RequiredFields {
		if !h.Has(field) {
			missing = append(missing, field)
		}
	}
	return h, missing
}

// MapRows converts a record grid whose first row is the header into review
// rows. Blank rows are skipped. When required columns are missing no rows are
// returned and missing names the absent fields.
func MapRows(records [][]string, cols config.Columns) (rows []models.ReviewRow, missing []string) {
	if len(records) == 0 {
		return nil, append([]string{}, config.RequiredFields...)
	}

	h, missing := ResolveHeader(records[0], cols)
	if len(missing) > 0 {
		return nil, missing
	}

	for i, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		rows = append(rows, models.ReviewRow{
			Line:                i + 2, // 1-based, after the header
			Reviewee:            strings.TrimSpace(h.value(record, config.FieldReviewee)),
			Cycle:               strings.TrimSpace(h.value(record, config.FieldCycle)),
			Team:                strings.TrimSpace(h.value(record, config.FieldTeam)),
			Position:            strings.TrimSpace(h.value(record, config.FieldPosition)),
			Reviewer:            strings.TrimSpace(h.value(record, config.FieldReviewer)),
			Comment:             h.value(record, config.FieldComment),
			FeedbackType:        strings.TrimSpace(h.value(record, config.FieldFeedbackType)),
			Question:            strings.TrimSpace(h.value(record, config.FieldQuestion)),
			QuestionDescription: strings.TrimSpace(h.value(record, config.FieldQuestionDescription)),
			LaunchDate:          normalizeDate(h.value(record, config.FieldLaunchDate)),
		})
	}
	return rows, nil
}

// isBlank reports whether every cell of the record is empty or whitespace.
func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Serial numbers outside 1950-01-01..2099-12-31 are not treated as dates, so
// plain numbers such as a year stay as written.
const (
	minDateSerial = 18264
	maxDateSerial = 73051
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/06",
	"02.01.2006",
}

// normalizeDate renders a launch date as YYYY-MM-DD. Excel serial numbers
// and a few common textual layouts are recognized; anything else is
// returned trimmed and unchanged.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial >= minDateSerial && serial < maxDateSerial {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return t.Format("2006-01-02")
			}
		}
		return s
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}
