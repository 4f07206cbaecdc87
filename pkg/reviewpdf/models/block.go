package models

// BlockKind distinguishes paragraphs from list items.
type BlockKind int

const (
	// BlockParagraph is a plain paragraph.
	BlockParagraph BlockKind = iota
	// BlockListItem is a single list item.
	BlockListItem
)

func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockListItem:
		return "list_item"
	default:
		return "unknown"
	}
}

// Run is a span of text sharing one style.
type Run struct {
	Text      string `json:"text"`
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
}

// SameStyle reports whether two runs carry identical styling.
func (r Run) SameStyle(o Run) bool {
	return r.Bold == o.Bold && r.Italic == o.Italic && r.Underline == o.Underline
}

// StyledBlock represents one paragraph or list item of a translated comment.
type StyledBlock struct {
	// Kind is the block type.
	Kind BlockKind `json:"kind"`
	// Ordered is set for items of an ordered list.
	Ordered bool `json:"ordered,omitempty"`
	// Index is the 1-based position of a list item within its list (0 for paragraphs).
	Index int `json:"index,omitempty"`
	// Runs is the styled text of the block.
	Runs []Run `json:"runs"`
}

// Text returns the concatenated run text.
func (b StyledBlock) Text() string {
	var n int
	for _, r := range b.Runs {
		n += len(r.Text)
	}
	buf := make([]byte, 0, n)
	for _, r := range b.Runs {
		buf = append(buf, r.Text...)
	}
	return string(buf)
}
