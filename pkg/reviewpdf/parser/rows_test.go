package parser

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/config"
	"github.com/xuri/excelize/v2"
)

func TestSheetRecordsAndMapRows(t *testing.T) {
	// Create a temporary Excel file with reordered columns
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	header := []interface{}{
		"Response comment", "Reviewers name", "Reviewee name", "Review Cycle name",
		"Position - Reviewee", "Team - Reviewee", "Review cycle launch date", "Feedback type",
	}
	f.SetSheetRow(sheetName, "A1", &header)
	f.SetSheetRow(sheetName, "A2", &[]interface{}{
		"<p>Great <b>work</b></p>", "Ben", " Ana ", "2024 H1", "Engineer", "Platform",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "shared_feedback",
	})
	// Row 3 left blank on purpose
	f.SetSheetRow(sheetName, "A4", &[]interface{}{"Solid", "Dee", "Ana", "2024 H1", "Engineer", "Platform"})

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f2.Close()

	records, err := SheetRecords(f2, "")
	if err != nil {
		t.Fatalf("SheetRecords failed: %v", err)
	}

	rows, missing := MapRows(records, config.Default().Columns)
	if len(missing) != 0 {
		t.Fatalf("unexpected missing columns: %v", missing)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Line != 2 {
		t.Errorf("Expected line 2, got %d", first.Line)
	}
	if first.Reviewee != "Ana" {
		t.Errorf("Expected trimmed reviewee 'Ana', got %q", first.Reviewee)
	}
	if first.Reviewer != "Ben" || first.Team != "Platform" || first.Position != "Engineer" {
		t.Errorf("unexpected key fields: %+v", first.Key())
	}
	if first.Comment != "<p>Great <b>work</b></p>" {
		t.Errorf("unexpected comment %q", first.Comment)
	}
	if first.LaunchDate != "2024-01-01" {
		t.Errorf("Expected launch date 2024-01-01, got %q", first.LaunchDate)
	}
	if first.FeedbackType != "shared_feedback" {
		t.Errorf("Expected feedback type, got %q", first.FeedbackType)
	}

	second := rows[1]
	if second.Line != 4 {
		t.Errorf("Expected line 4, got %d", second.Line)
	}
	if second.LaunchDate != "" || second.Question != "" {
		t.Errorf("Expected short row to read empty cells, got %+v", second)
	}
}

func TestMapRowsMissingColumns(t *testing.T) {
	records := [][]string{
		{"Reviewee name", "Review Cycle name", "Team - Reviewee", "Position - Reviewee", "Response comment"},
		{"Ana", "2024 H1", "Platform", "Engineer", "ok"},
	}
	rows, missing := MapRows(records, config.Default().Columns)
	if rows != nil {
		t.Errorf("Expected no rows, got %d", len(rows))
	}
	if !reflect.DeepEqual(missing, []string{"reviewer"}) {
		t.Errorf("Expected missing [reviewer], got %v", missing)
	}
}

func TestMapRowsEmptySheet(t *testing.T) {
	_, missing := MapRows(nil, config.Default().Columns)
	if !reflect.DeepEqual(missing, config.RequiredFields) {
		t.Errorf("Expected all required fields missing, got %v", missing)
	}
}

func TestResolveHeaderCaseInsensitive(t *testing.T) {
	header := []string{" reviewee NAME ", "review cycle name", "TEAM - REVIEWEE", "position - reviewee", "reviewer's name", "response comment"}
	h, missing := ResolveHeader(header, config.Default().Columns)
	if len(missing) != 0 {
		t.Fatalf("unexpected missing columns: %v", missing)
	}
	if h.Has(config.FieldQuestion) {
		t.Errorf("optional question column should be absent")
	}
	if got := h.value([]string{"a", "b", "c", "d", "e", "f"}, config.FieldComment); got != "f" {
		t.Errorf("Expected comment column f, got %q", got)
	}
}

func TestCSVRecords(t *testing.T) {
	input := "\ufeffReviewee name,Review Cycle name,Team - Reviewee,Position - Reviewee,Reviewer's name,Response comment\n" +
		"Ana,2024 H1,Platform,Engineer,Ben,\"<p>multi\nline</p>\"\n" +
		"Carl,2024 H1,Platform\n"
	records, err := CSVRecords(strings.NewReader(input))
	if err != nil {
		t.Fatalf("CSVRecords failed: %v", err)
	}
	rows, missing := MapRows(records, config.Default().Columns)
	if len(missing) != 0 {
		t.Fatalf("unexpected missing columns: %v", missing)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].Comment != "<p>multi\nline</p>" {
		t.Errorf("unexpected comment %q", rows[0].Comment)
	}
	if rows[1].Reviewer != "" || rows[1].Comment != "" {
		t.Errorf("Expected short record to read empty cells, got %+v", rows[1])
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"45292", "2024-01-01"},
		{"2024-03-05", "2024-03-05"},
		{"2024-03-05T10:00:00Z", "2024-03-05"},
		{"03/05/2024", "2024-03-05"},
		{" next spring ", "next spring"},
		{"", ""},
		{"-3", "-3"},
		{"2024", "2024"},
		{"45292.75", "2024-01-01"},
		{"18264", "1950-01-01"},
		{"73051", "73051"},
	}

	for _, tt := range tests {
		result := normalizeDate(tt.input)
		if result != tt.expected {
			t.Errorf("normalizeDate(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		record   []string
		expected bool
	}{
		{nil, true},
		{[]string{"", "  ", "\t"}, true},
		{[]string{"", "x"}, false},
	}
	for _, tt := range tests {
		if got := isBlank(tt.record); got != tt.expected {
			t.Errorf("isBlank(%q) = %v, expected %v", tt.record, got, tt.expected)
		}
	}
}
