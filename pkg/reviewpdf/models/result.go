package models

// GroupResult is the outcome of rendering one group.
type GroupResult struct {
	// Key is the group's key.
	Key GroupKey `json:"key"`
	// Path is the output file path (set even when writing failed).
	Path string `json:"path"`
	// Rows is the number of rows in the group.
	Rows int `json:"rows"`
	// Err is the render failure, nil on success.
	Err error `json:"-"`
	// Error mirrors Err for serialization.
	Error string `json:"error,omitempty"`
	// Warnings holds the markup warnings raised while translating the group.
	Warnings []MarkupWarning `json:"warnings,omitempty"`
}

// OK reports whether the group was rendered.
func (r GroupResult) OK() bool {
	return r.Err == nil
}

// Summary aggregates a whole run.
type Summary struct {
	// Input is the spreadsheet path.
	Input string `json:"input"`
	// OutputDir is the directory documents were written to.
	OutputDir string `json:"output_dir"`
	// Generated is the number of documents written.
	Generated int `json:"generated"`
	// Failed is the number of groups that could not be rendered.
	Failed int `json:"failed"`
	// Warnings counts markup warnings by kind.
	Warnings map[WarningKind]int `json:"warnings,omitempty"`
	// Results holds one entry per group in first-appearance order.
	Results []GroupResult `json:"results"`
}

// WarningTotal returns the number of markup warnings across all kinds.
func (s *Summary) WarningTotal() int {
	total := 0
	for _, n := range s.Warnings {
		total += n
	}
	return total
}
