package render

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cespare/xxhash"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/models"
)

// maxPartRunes bounds each key field inside a file name.
const maxPartRunes = 40

// maxStemBytes bounds the joined key fields so the whole name, digest and
// extension included, stays under the 255-byte limit of common filesystems.
const maxStemBytes = 200

// FileName returns the output file name for a group. The name is built from
// the sanitized key fields and ends with a digest of the raw key, so equal
// keys always map to the same name and keys that sanitize alike still differ.
func FileName(key models.GroupKey) string {
	fields := key.Fields()
	raw := make([]string, 0, len(fields))
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		raw = append(raw, f.Value)
		if p := sanitize(f.Value); p != "" {
			parts = append(parts, p)
		}
	}
	stem := strings.Trim(truncateBytes(strings.Join(parts, "__"), maxStemBytes), "._-")
	if stem == "" {
		stem = "review"
	}
	sum := xxhash.Sum64([]byte(strings.Join(raw, "\x1f")))
	return fmt.Sprintf("%s-%08x.pdf", stem, uint32(sum))
}

// truncateBytes cuts s to at most n bytes without splitting a character.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	end := 0
	for i, r := range s {
		next := i + utf8.RuneLen(r)
		if next > n {
			break
		}
		end = next
	}
	return s[:end]
}

// sanitize keeps letters, digits, '-' and '.'; every other run of characters
// becomes a single '_'.
func sanitize(s string) string {
	var b strings.Builder
	n := 0
	underscore := false
	for _, r := range s {
		if n >= maxPartRunes {
			break
		}
		if (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.') && r <= 0xFFFF {
			b.WriteRune(r)
			underscore = false
			n++
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
			n++
		}
	}
	return strings.Trim(b.String(), "._-")
}
