package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ReplacementChar stands in for characters outside the Basic Multilingual Plane.
const ReplacementChar = '\uFFFD'

// maxBMP is the last code point of the Basic Multilingual Plane.
const maxBMP = 0xFFFF

// ReplaceNonBMP substitutes every rune above U+FFFF with U+FFFD and returns
// the number of runes replaced.
func ReplaceNonBMP(s string) (string, int) {
	var b strings.Builder
	n := 0
	for i, r := range s {
		if r <= maxBMP {
			if n > 0 {
				b.WriteRune(r)
			}
			continue
		}
		if n == 0 {
			b.Grow(len(s))
			b.WriteString(s[:i])
		}
		b.WriteRune(ReplacementChar)
		n++
	}
	if n == 0 {
		return s, 0
	}
	return b.String(), n
}

// Translate converts a comment written in the supported HTML subset into
// styled blocks. It never fails: unknown tags are stripped with their text
// kept, unclosed tags are closed at the end of the input and stray closing
// tags are ignored. Problems are reported as warnings.
//
// Supported tags: p, div, br, b, strong, i, em, u, ins, ul, ol, li. The tags
// span, font, a, html, head and body are passed through silently.
func Translate(comment string) ([]models.StyledBlock, []models.MarkupWarning) {
	t := &translator{warnedTags: make(map[string]bool)}
	z := html.NewTokenizer(strings.NewReader(comment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a reader error; either way the input is exhausted.
			t.endBlock()
			return t.blocks, t.warnings
		case html.TextToken:
			t.text(string(z.Text()))
		case html.StartTagToken:
			name, _ := z.TagName()
			t.startTag(string(name), false)
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			t.startTag(string(name), true)
		case html.EndTagToken:
			name, _ := z.TagName()
			t.endTag(string(name))
		}
	}
}

type listState struct {
	ordered bool
	count   int
	// itemOpen is set between <li> and </li>.
	itemOpen bool
	// itemStarted is set once the open item has produced its block.
	itemStarted bool
}

type translator struct {
	blocks     []models.StyledBlock
	warnings   []models.MarkupWarning
	warnedTags map[string]bool

	cur     *models.StyledBlock
	run     models.Run
	runText strings.Builder

	// pendingSpace holds a collapsed whitespace sequence not yet emitted,
	// styled as it was when the sequence began.
	pendingSpace bool
	spaceStyle   models.Run

	bold, italic, underline int
	lists                   []listState
}

func (t *translator) style() models.Run {
	return models.Run{Bold: t.bold > 0, Italic: t.italic > 0, Underline: t.underline > 0}
}

func (t *translator) top() *listState {
	if len(t.lists) == 0 {
		return nil
	}
	return &t.lists[len(t.lists)-1]
}

func (t *translator) warn(kind models.WarningKind, detail string) {
	t.warnings = append(t.warnings, models.MarkupWarning{Kind: kind, Detail: detail})
}

// space records a collapsible space at the current position.
func (t *translator) space() {
	if !t.pendingSpace {
		t.pendingSpace = true
		t.spaceStyle = t.style()
	}
}

func (t *translator) text(s string) {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			t.space()
			continue
		}
		if r > maxBMP {
			t.warn(models.WarnNonBMP, fmt.Sprintf("U+%04X replaced with U+FFFD", r))
			r = ReplacementChar
		}
		if t.cur == nil {
			t.beginBlock()
			t.pendingSpace = false
		} else if t.pendingSpace {
			t.write(' ', t.spaceStyle)
			t.pendingSpace = false
		}
		t.write(r, t.style())
	}
}

func (t *translator) write(r rune, style models.Run) {
	if t.runText.Len() > 0 && !t.run.SameStyle(style) {
		t.closeRun()
	}
	if t.runText.Len() == 0 {
		t.run = style
	}
	t.runText.WriteRune(r)
}

func (t *translator) closeRun() {
	if t.runText.Len() == 0 {
		return
	}
	run := t.run
	run.Text = t.runText.String()
	t.runText.Reset()

	runs := t.cur.Runs
	if n := len(runs); n > 0 && runs[n-1].SameStyle(run) {
		runs[n-1].Text += run.Text
		return
	}
	t.cur.Runs = append(runs, run)
}

// beginBlock opens the block that the next character belongs to.
func (t *translator) beginBlock() {
	if l := t.top(); l != nil && l.itemOpen && !l.itemStarted {
		l.itemStarted = true
		t.cur = &models.StyledBlock{Kind: models.BlockListItem, Ordered: l.ordered, Index: l.count}
		return
	}
	t.cur = &models.StyledBlock{Kind: models.BlockParagraph}
}

// endBlock finishes the current block. Trailing whitespace is dropped.
func (t *translator) endBlock() {
	t.pendingSpace = false
	if t.cur == nil {
		return
	}
	t.closeRun()
	if len(t.cur.Runs) > 0 {
		t.blocks = append(t.blocks, *t.cur)
	}
	t.cur = nil
}

func (t *translator) startTag(name string, selfClosing bool) {
	switch a := atom.Lookup([]byte(name)); a {
	case atom.P, atom.Div:
		t.boundary()
		if selfClosing {
			t.boundary()
		}
	case atom.Br:
		t.boundary()
	case atom.B, atom.Strong:
		if !selfClosing {
			t.bold++
		}
	case atom.I, atom.Em:
		if !selfClosing {
			t.italic++
		}
	case atom.U, atom.Ins:
		if !selfClosing {
			t.underline++
		}
	case atom.Ul, atom.Ol:
		if !selfClosing {
			t.openList(a == atom.Ol)
		}
	case atom.Li:
		t.openItem()
		if selfClosing {
			t.closeItem()
		}
	case atom.Span, atom.Font, atom.A, atom.Html, atom.Head, atom.Body:
	default:
		t.unsupported(name)
	}
}

func (t *translator) endTag(name string) {
	switch atom.Lookup([]byte(name)) {
	case atom.P, atom.Div:
		t.boundary()
	case atom.Br:
		// </br> is parsed as <br> by browsers.
		t.boundary()
	case atom.B, atom.Strong:
		if t.bold > 0 {
			t.bold--
		}
	case atom.I, atom.Em:
		if t.italic > 0 {
			t.italic--
		}
	case atom.U, atom.Ins:
		if t.underline > 0 {
			t.underline--
		}
	case atom.Ul, atom.Ol:
		t.closeList()
	case atom.Li:
		t.closeItem()
	case atom.Span, atom.Font, atom.A, atom.Html, atom.Head, atom.Body:
	default:
		t.unsupported(name)
	}
}

// boundary ends the current paragraph. Inside a list item it only
// separates words, so an item's paragraphs stay one block.
func (t *translator) boundary() {
	if l := t.top(); l != nil && l.itemOpen && l.itemStarted && t.cur != nil && t.cur.Kind == models.BlockListItem {
		t.space()
		return
	}
	t.endBlock()
}

func (t *translator) openList(ordered bool) {
	if len(t.lists) > 0 {
		t.warn(models.WarnNestedList, fmt.Sprintf("nested %s flattened to top-level items", listTag(ordered)))
	}
	t.endBlock()
	t.lists = append(t.lists, listState{ordered: ordered})
}

func (t *translator) closeList() {
	if len(t.lists) == 0 {
		return
	}
	t.endBlock()
	t.lists = t.lists[:len(t.lists)-1]
}

func (t *translator) openItem() {
	l := t.top()
	t.endBlock()
	if l == nil {
		// A stray <li> only separates paragraphs.
		return
	}
	l.count++
	l.itemOpen = true
	l.itemStarted = false
}

func (t *translator) closeItem() {
	l := t.top()
	if l == nil || !l.itemOpen {
		return
	}
	t.endBlock()
	l.itemOpen = false
	l.itemStarted = false
}

// unsupported strips a tag outside the vocabulary, keeping its text. The tag
// still separates words so adjacent cells do not run together.
func (t *translator) unsupported(name string) {
	if !t.warnedTags[name] {
		t.warnedTags[name] = true
		t.warn(models.WarnUnsupportedTag, fmt.Sprintf("<%s> stripped, inner text kept", name))
	}
	t.space()
}

func listTag(ordered bool) string {
	if ordered {
		return "<ol>"
	}
	return "<ul>"
}
