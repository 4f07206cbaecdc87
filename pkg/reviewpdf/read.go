package reviewpdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/config"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/models"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/parser"
	"github.com/xuri/excelize/v2"
)

// SpreadsheetExtensions lists the input extensions ReadRows accepts.
var SpreadsheetExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".csv"}

// ReadRows loads every review row of the export at path. It returns an
// *InputError when the file cannot be read as a spreadsheet and a
// *SchemaError when required columns are missing.
func ReadRows(path string, cfg *config.Config) ([]models.ReviewRow, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewInputError(path, "", ErrFileNotFound)
		}
		return nil, NewInputError(path, "cannot access file", err)
	}
	if info.IsDir() {
		return nil, NewInputError(path, "path is a directory", ErrUnsupportedFormat)
	}

	records, err := readRecords(path, cfg.Sheet)
	if err != nil {
		return nil, err
	}

	rows, missing := parser.MapRows(records, cfg.Columns)
	if len(missing) > 0 {
		expected := make(map[string][]string, len(missing))
		for _, field := range missing {
			expected[field] = cfg.Columns.Aliases(field)
		}
		return nil, &SchemaError{Path: path, Missing: missing, Expected: expected}
	}
	return rows, nil
}

func readRecords(path, sheet string) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, NewInputError(path, "cannot open file", err)
		}
		defer f.Close()

		records, err := parser.CSVRecords(f)
		if err != nil {
			return nil, NewInputError(path, "malformed CSV", err)
		}
		return records, nil

	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, NewInputError(path, "cannot open workbook", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err))
		}
		defer f.Close()

		records, err := parser.SheetRecords(f, sheet)
		if err != nil {
			return nil, NewInputError(path, fmt.Sprintf("cannot read sheet %q", sheet), err)
		}
		return records, nil

	case ".xls":
		return nil, NewInputError(path, "legacy .xls workbooks are not supported, save the export as .xlsx", ErrUnsupportedFormat)

	default:
		return nil, NewInputError(path, fmt.Sprintf("%q is not a recognized spreadsheet extension", ext), ErrUnsupportedFormat)
	}
}
