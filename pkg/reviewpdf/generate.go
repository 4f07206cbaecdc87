package reviewpdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/config"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/logger"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/models"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/parser"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/picker"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/render"
	"golang.org/x/sync/errgroup"
)

// ResolvePath obtains the input path from r and checks that it exists.
// Every failure is reported as an *InputError.
func ResolvePath(r picker.Resolver) (string, error) {
	path, err := r.Resolve()
	switch {
	case errors.Is(err, picker.ErrNotInteractive):
		return "", NewInputError("", "no interactive terminal for the file picker, pass --file <path>", err)
	case errors.Is(err, picker.ErrCancelled):
		return "", NewInputError("", "", ErrNoFileSelected)
	case err != nil:
		return "", NewInputError("", "file selection failed", err)
	case path == "":
		return "", NewInputError("", "", ErrNoFileSelected)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", NewInputError(path, "", ErrFileNotFound)
		}
		return "", NewInputError(path, "cannot access file", err)
	}
	if info.IsDir() {
		return "", NewInputError(path, "path is a directory", ErrUnsupportedFormat)
	}
	return path, nil
}

// Generate reads the export, groups its rows and writes one PDF per group.
//
// Font, input and schema problems abort the run before any document is
// written and are returned as errors. A group that fails to render is
// recorded in the summary and the remaining groups are still processed.
func Generate(opts Options) (*models.Summary, error) {
	cfg := opts.config()

	fonts := opts.Fonts
	if fonts == nil {
		var err error
		fonts, err = render.LoadFonts(opts.FontsDir, opts.Font)
		if err != nil {
			return nil, NewRenderError(models.GroupKey{}, "", err)
		}
		logger.Log.Debugf("loaded %s fonts from %s", opts.Font, opts.FontsDir)
	}

	rows, err := ReadRows(opts.Input, cfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Infof("read %d rows from %s", len(rows), opts.Input)

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = filepath.Join(filepath.Dir(opts.Input), cfg.OutputDirName)
	}

	groups := parser.GroupRows(rows)
	summary := &models.Summary{
		Input:     opts.Input,
		OutputDir: outDir,
		Warnings:  make(map[models.WarningKind]int),
		Results:   make([]models.GroupResult, len(groups)),
	}
	if len(groups) == 0 {
		logger.Log.Warnf("no review rows found in %s", opts.Input)
		return summary, nil
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, NewRenderError(models.GroupKey{}, outDir, fmt.Errorf("create output directory: %w", err))
	}

	if workers := opts.workers(); workers > 1 {
		var g errgroup.Group
		g.SetLimit(workers)
		for i, group := range groups {
			g.Go(func() error {
				summary.Results[i] = renderGroup(group, cfg, fonts, opts.Layout, outDir)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, group := range groups {
			summary.Results[i] = renderGroup(group, cfg, fonts, opts.Layout, outDir)
		}
	}

	for _, res := range summary.Results {
		if res.OK() {
			summary.Generated++
		} else {
			summary.Failed++
		}
		for _, w := range res.Warnings {
			summary.Warnings[w.Kind]++
		}
	}
	return summary, nil
}

// BuildDocument translates every row of a group into styled blocks. Key,
// question and description text have non-BMP characters replaced.
func BuildDocument(group models.ReviewGroup, cfg *config.Config) (models.GroupDocument, []models.MarkupWarning) {
	var warnings []models.MarkupWarning
	clean := func(s, what string) string {
		out, n := parser.ReplaceNonBMP(s)
		for i := 0; i < n; i++ {
			warnings = append(warnings, models.MarkupWarning{
				Kind:   models.WarnNonBMP,
				Detail: fmt.Sprintf("character in %s replaced with U+FFFD", what),
			})
		}
		return out
	}

	doc := models.GroupDocument{
		Key: models.GroupKey{
			Reviewee: clean(group.Key.Reviewee, "reviewee"),
			Cycle:    clean(group.Key.Cycle, "cycle"),
			Team:     clean(group.Key.Team, "team"),
			Position: clean(group.Key.Position, "position"),
			Reviewer: clean(group.Key.Reviewer, "reviewer"),
		},
		Entries: make([]models.Entry, 0, len(group.Rows)),
	}

	for _, row := range group.Rows {
		blocks, rowWarnings := parser.Translate(row.Comment)
		for _, w := range rowWarnings {
			w.Detail = fmt.Sprintf("line %d: %s", row.Line, w.Detail)
			warnings = append(warnings, w)
		}
		row.Question = clean(row.Question, "question")
		row.QuestionDescription = clean(row.QuestionDescription, "question description")
		row.LaunchDate = clean(row.LaunchDate, "launch date")
		doc.Entries = append(doc.Entries, models.Entry{
			Row:     row,
			Section: clean(cfg.SectionLabel(row.FeedbackType), "feedback type"),
			Blocks:  blocks,
		})
	}
	return doc, warnings
}

// writeDocument renders one document to disk.
var writeDocument = render.WriteFile

func renderGroup(group models.ReviewGroup, cfg *config.Config, fonts *render.FontSet, layout render.Layout, outDir string) (res models.GroupResult) {
	path := filepath.Join(outDir, render.FileName(group.Key))
	log := logger.Log.WithFields(logrus.Fields{
		"reviewee": group.Key.Reviewee,
		"reviewer": group.Key.Reviewer,
	})
	res = models.GroupResult{Key: group.Key, Path: path, Rows: len(group.Rows)}

	// A panic inside the PDF library fails this group only.
	defer func() {
		if r := recover(); r != nil {
			res.Err = NewRenderError(group.Key, path, fmt.Errorf("renderer panic: %v", r))
			res.Error = res.Err.Error()
			log.Errorf("failed to render %s: %v", path, r)
		}
	}()

	doc, warnings := BuildDocument(group, cfg)
	res.Warnings = warnings
	for _, w := range warnings {
		log.WithField("kind", w.Kind).Warn(w.Detail)
	}

	if err := writeDocument(path, doc, fonts, layout); err != nil {
		res.Err = NewRenderError(group.Key, path, err)
		res.Error = res.Err.Error()
		log.Errorf("failed to render %s: %v", path, err)
		return res
	}
	log.Infof("generated %s", path)
	return res
}
