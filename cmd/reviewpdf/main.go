// Package main provides the CLI entry point for reviewpdf.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/config"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/logger"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/models"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/picker"
)

var (
	inputPath  string
	fontName   string
	fontsDir   string
	outputDir  string
	configPath string
	workers    int
	logLevel   string
	logFile    string
	reportPath string
)

// errGroupsFailed makes the process exit non-zero after the summary was printed.
var errGroupsFailed = errors.New("some documents could not be generated")

func main() {
	rootCmd := &cobra.Command{
		Use:   "reviewpdf",
		Short: "Generate one PDF per reviewee and reviewer from a review export",
		Long: `reviewpdf reads a performance review export (.xlsx or .csv), groups the
rows by reviewee, review cycle, team, position and reviewer, and writes one
formatted PDF per group.`,
		Args:          cobra.NoArgs,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&inputPath, "file", "f", "", "Review export to read (default: choose interactively)")
	rootCmd.Flags().StringVar(&fontName, "font", string(models.FontNoto), "Font preset: noto, dejavu")
	rootCmd.Flags().StringVar(&fontsDir, "fonts-dir", "fonts", "Directory holding the font presets")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory (default: generated_pdfs next to the input)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML file overriding column names and section labels")
	rootCmd.Flags().IntVar(&workers, "workers", 1, "Number of documents rendered concurrently")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Also append logs to this file")
	rootCmd.Flags().StringVar(&reportPath, "report", "", "Write the run summary as JSON to this file")

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errGroupsFailed) {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	closer, err := logger.Init(logLevel, logFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	font, err := models.ParseFontPreset(fontName)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if configPath != "" {
		if cfg, err = config.Load(configPath); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	var resolver picker.Resolver = picker.ExplicitPath(inputPath)
	if inputPath == "" {
		resolver = picker.InteractivePrompt{Extensions: reviewpdf.SpreadsheetExtensions}
	}
	input, err := reviewpdf.ResolvePath(resolver)
	if err != nil {
		return err
	}

	opts := reviewpdf.DefaultOptions()
	opts.Input = input
	opts.OutputDir = outputDir
	opts.Font = font
	opts.FontsDir = resolveFontsDir(fontsDir, cmd.Flags().Changed("fonts-dir"))
	opts.Config = cfg
	opts.Workers = workers

	summary, err := reviewpdf.Generate(opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatSummary(summary))

	if reportPath != "" {
		if err := writeReport(reportPath, summary); err != nil {
			return err
		}
	}
	if summary.Failed > 0 {
		return errGroupsFailed
	}
	return nil
}

// resolveFontsDir falls back to the fonts directory next to the executable
// when the default relative directory does not exist.
func resolveFontsDir(dir string, explicit bool) string {
	if explicit {
		return dir
	}
	if _, err := os.Stat(dir); err == nil {
		return dir
	}
	exe, err := os.Executable()
	if err != nil {
		return dir
	}
	candidate := filepath.Join(filepath.Dir(exe), dir)
	if _, err := os.Stat(candidate); err == nil {
		logger.Log.Debugf("using fonts directory %s", candidate)
		return candidate
	}
	return dir
}

func writeReport(path string, summary *models.Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
