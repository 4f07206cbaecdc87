// Package reviewpdf generates one PDF per reviewee/reviewer group from a
// review export spreadsheet.
package reviewpdf

import (
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/config"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/models"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/render"
)

// Options configures a generation run.
type Options struct {
	// Input is the spreadsheet path.
	Input string
	// OutputDir is where documents are written. If empty, Config.OutputDirName
	// next to the input file is used.
	OutputDir string
	// Font selects the font preset.
	Font models.FontPreset
	// FontsDir is the directory holding one sub-directory per preset.
	FontsDir string
	// Fonts, when set, is used instead of loading Font from FontsDir.
	Fonts *render.FontSet
	// Config carries the column contract and section labels. If nil, defaults are used.
	Config *config.Config
	// Layout controls the page layout.
	Layout render.Layout
	// Workers is the number of groups rendered concurrently; values below 2 render sequentially.
	Workers int
}

// DefaultOptions returns default generation options.
func DefaultOptions() Options {
	return Options{
		Font:     models.FontNoto,
		FontsDir: "fonts",
		Layout:   render.DefaultLayout(),
		Workers:  1,
	}
}

func (o Options) config() *config.Config {
	if o.Config != nil {
		return o.Config
	}
	return config.Default()
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}
