// Package render lays out review groups as PDF documents.
package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/models"
)

// Variant is one face of a font family.
type Variant int

const (
	Regular Variant = iota
	Bold
	Italic
	BoldItalic
)

var variantNames = [...]string{"regular", "bold", "italic", "bold-italic"}

func (v Variant) String() string {
	return variantNames[v]
}

// style returns the fpdf style string selecting the variant.
func (v Variant) style() string {
	return [...]string{"", "B", "I", "BI"}[v]
}

// variantTable maps a (bold, italic) combination to the face that renders it.
var variantTable = map[[2]bool]Variant{
	{false, false}: Regular,
	{true, false}:  Bold,
	{false, true}:  Italic,
	{true, true}:   BoldItalic,
}

// VariantFor returns the face for a bold/italic combination.
func VariantFor(bold, italic bool) Variant {
	return variantTable[[2]bool{bold, italic}]
}

type presetFiles struct {
	family string
	folder string
	files  [4]string
}

var presets = map[models.FontPreset]presetFiles{
	models.FontNoto: {
		family: "NotoSans",
		folder: "NotoSans",
		files: [4]string{
			Regular:    "NotoSans-Regular.ttf",
			Bold:       "NotoSans-Bold.ttf",
			Italic:     "NotoSans-Italic.ttf",
			BoldItalic: "NotoSans-BoldItalic.ttf",
		},
	},
	models.FontDejaVu: {
		family: "DejaVuSans",
		folder: "DejaVuSans",
		files: [4]string{
			Regular:    "DejaVuSans.ttf",
			Bold:       "DejaVuSans-Bold.ttf",
			Italic:     "DejaVuSans-Oblique.ttf",
			BoldItalic: "DejaVuSans-BoldOblique.ttf",
		},
	},
}

// FontPaths returns the four face paths of a preset under dir, indexed by Variant.
func FontPaths(dir string, preset models.FontPreset) ([4]string, error) {
	p, ok := presets[preset]
	if !ok {
		return [4]string{}, fmt.Errorf("unknown font preset %q", preset)
	}
	var paths [4]string
	for v, name := range p.files {
		paths[v] = filepath.Join(dir, p.folder, name)
	}
	return paths, nil
}

// ErrFontMissing indicates a font face file does not exist.
var ErrFontMissing = errors.New("font file not found")

// FontError reports a face that could not be loaded.
type FontError struct {
	Preset  models.FontPreset
	Variant Variant
	Path    string
	Err     error
}

func (e *FontError) Error() string {
	return fmt.Sprintf("font %s (%s) at %s: %v", e.Preset, e.Variant, e.Path, e.Err)
}

func (e *FontError) Unwrap() error {
	return e.Err
}

// FontSet holds the loaded faces of one preset. A FontSet without face data
// uses the fpdf core font named by Family.
type FontSet struct {
	Preset models.FontPreset
	Family string
	Paths  [4]string
	faces  [4][]byte
}

// LoadFonts reads and parses every face of the preset under dir. It fails on
// the first face that is missing or unreadable as a TrueType font.
func LoadFonts(dir string, preset models.FontPreset) (*FontSet, error) {
	paths, err := FontPaths(dir, preset)
	if err != nil {
		return nil, err
	}

	fs := &FontSet{Preset: preset, Family: presets[preset].family, Paths: paths}
	for v, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				err = ErrFontMissing
			}
			return nil, &FontError{Preset: preset, Variant: Variant(v), Path: path, Err: err}
		}
		if err := checkSFNT(data); err != nil {
			return nil, &FontError{Preset: preset, Variant: Variant(v), Path: path, Err: err}
		}
		if err := probeFace(fs.Family, Variant(v), data); err != nil {
			return nil, &FontError{Preset: preset, Variant: Variant(v), Path: path, Err: err}
		}
		fs.faces[v] = data
	}
	return fs, nil
}

// errNotTrueType is returned for data without a TrueType sfnt header.
var errNotTrueType = errors.New("not a TrueType font")

// checkSFNT accepts the TrueType sfnt versions fpdf can embed.
func checkSFNT(data []byte) error {
	if len(data) < 12 {
		return errNotTrueType
	}
	switch string(data[:4]) {
	case "\x00\x01\x00\x00", "true":
		return nil
	}
	return errNotTrueType
}

// probeFace registers one face with a scratch document to make sure fpdf can
// parse it.
func probeFace(family string, v Variant, data []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unreadable font data: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(family, v.style(), data)
	// A face fpdf failed to parse is left unregistered, which SetFont reports.
	pdf.SetFont(family, v.style(), 10)
	return pdf.Error()
}

func (fs *FontSet) core() bool {
	return fs.faces[Regular] == nil
}

// register adds the faces to pdf and returns the text translator to use.
func (fs *FontSet) register(pdf *fpdf.Fpdf) func(string) string {
	if fs.core() {
		return pdf.UnicodeTranslatorFromDescriptor("")
	}
	for v, data := range fs.faces {
		pdf.AddUTF8FontFromBytes(fs.Family, Variant(v).style(), data)
	}
	return func(s string) string { return s }
}
