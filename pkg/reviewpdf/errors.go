package reviewpdf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/models"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates the input is not a readable spreadsheet.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// ErrNoFileSelected indicates the interactive picker was closed without a choice.
var ErrNoFileSelected = errors.New("no file selected")

// InputError represents a problem locating or opening the input file.
type InputError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	var b strings.Builder
	b.WriteString("input error")
	if e.Path != "" {
		fmt.Fprintf(&b, " for %q", e.Path)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// NewInputError creates a new InputError.
func NewInputError(path, reason string, err error) *InputError {
	return &InputError{Path: path, Reason: reason, Err: err}
}

// SchemaError reports required columns missing from the header row.
type SchemaError struct {
	Path string
	// Missing lists the logical names of the absent columns.
	Missing []string
	// Expected maps each missing column to the header names that were accepted.
	Expected map[string][]string
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Missing))
	for _, field := range e.Missing {
		if aliases := e.Expected[field]; len(aliases) > 0 {
			parts = append(parts, fmt.Sprintf("%s (expected one of %q)", field, aliases))
			continue
		}
		parts = append(parts, field)
	}
	return fmt.Sprintf("schema error in %q: missing required column(s): %s", e.Path, strings.Join(parts, ", "))
}

// RenderError represents a failure producing one document, or loading the
// fonts every document needs.
type RenderError struct {
	// Key is the group being rendered; zero for font loading failures.
	Key  models.GroupKey
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	if e.Key == (models.GroupKey{}) {
		return fmt.Sprintf("render error: %v", e.Err)
	}
	return fmt.Sprintf("render error for %s / %s (%s): %v", e.Key.Reviewee, e.Key.Reviewer, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError creates a new RenderError.
func NewRenderError(key models.GroupKey, path string, err error) *RenderError {
	return &RenderError{Key: key, Path: path, Err: err}
}
