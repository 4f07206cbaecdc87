package models

import (
	"fmt"
	"strings"
)

// FontPreset selects the embedded font family.
type FontPreset string

const (
	// FontNoto selects Google Noto Sans (default).
	FontNoto FontPreset = "noto"
	// FontDejaVu selects DejaVu Sans.
	FontDejaVu FontPreset = "dejavu"
)

// FontPresets lists the supported presets.
func FontPresets() []FontPreset {
	return []FontPreset{FontNoto, FontDejaVu}
}

// ParseFontPreset parses a preset name case-insensitively.
func ParseFontPreset(s string) (FontPreset, error) {
	name := FontPreset(strings.ToLower(strings.TrimSpace(s)))
	names := make([]string, 0, 2)
	for _, p := range FontPresets() {
		if p == name {
			return p, nil
		}
		names = append(names, string(p))
	}
	return "", fmt.Errorf("invalid font preset: %s (must be %s)", s, strings.Join(names, " or "))
}
