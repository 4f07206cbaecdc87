package models

// GroupKey identifies one output document.
type GroupKey struct {
	Reviewee string `json:"reviewee"`
	Cycle    string `json:"cycle"`
	Team     string `json:"team"`
	Position string `json:"position"`
	Reviewer string `json:"reviewer"`
}

// KeyField is a labelled key value as shown in a document header.
type KeyField struct {
	Label string
	Value string
}

// Fields returns the key values in header order.
func (k GroupKey) Fields() []KeyField {
	return []KeyField{
		{Label: "Reviewee", Value: k.Reviewee},
		{Label: "Review cycle", Value: k.Cycle},
		{Label: "Team", Value: k.Team},
		{Label: "Position", Value: k.Position},
		{Label: "Reviewer", Value: k.Reviewer},
	}
}

// ReviewGroup represents the rows sharing one GroupKey, in input order.
type ReviewGroup struct {
	// Key is the shared grouping key.
	Key GroupKey `json:"key"`
	// Rows contains the group's rows in input order.
	Rows []ReviewRow `json:"rows"`
}

// Entry is one row of a group together with its translated comment.
type Entry struct {
	// Row is the source row.
	Row ReviewRow
	// Section is the display label for the row's feedback type (may be empty).
	Section string
	// Blocks is the translated comment; empty when the comment was blank.
	Blocks []StyledBlock
}

// GroupDocument is a group ready for layout.
type GroupDocument struct {
	// Key is the grouping key rendered in the header.
	Key GroupKey
	// Entries holds one entry per group row, in input order.
	Entries []Entry
}
