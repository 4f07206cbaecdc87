package models

import "fmt"

// WarningKind classifies a non-fatal markup problem.
type WarningKind string

const (
	// WarnUnsupportedTag means a tag outside the supported vocabulary was stripped.
	WarnUnsupportedTag WarningKind = "unsupported_tag"
	// WarnNonBMP means a character outside the Basic Multilingual Plane was replaced.
	WarnNonBMP WarningKind = "non_bmp_replaced"
	// WarnNestedList means a nested list was flattened to top-level items.
	WarnNestedList WarningKind = "nested_list_flattened"
)

// MarkupWarning is reported by the markup translator and never aborts a run.
type MarkupWarning struct {
	Kind   WarningKind `json:"kind"`
	Detail string      `json:"detail"`
}

func (w MarkupWarning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
}
