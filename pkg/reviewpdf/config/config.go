// Package config holds the column contract with the review export and the
// presentation labels used in generated documents.
//
// Defaults live in defaultConfigYAML. A user file only needs the keys it wants
// to change; everything else keeps the default value.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Logical field names. These are the names reported in schema errors.
const (
	FieldReviewee            = "reviewee"
	FieldCycle               = "cycle"
	FieldTeam                = "team"
	FieldPosition            = "position"
	FieldReviewer            = "reviewer"
	FieldComment             = "comment"
	FieldFeedbackType        = "feedback_type"
	FieldQuestion            = "question"
	FieldQuestionDescription = "question_description"
	FieldLaunchDate          = "launch_date"
)

// RequiredFields lists the logical fields every export must carry, in header order.
var RequiredFields = []string{
	FieldReviewee,
	FieldCycle,
	FieldTeam,
	FieldPosition,
	FieldReviewer,
	FieldComment,
}

// OptionalFields lists fields that enrich the document when present.
var OptionalFields = []string{
	FieldFeedbackType,
	FieldQuestion,
	FieldQuestionDescription,
	FieldLaunchDate,
}

const defaultConfigYAML = `# reviewpdf configuration
# Header names accepted for each logical column. Matching ignores case and
# surrounding whitespace; the first alias found in the header row wins.
columns:
  reviewee: ["Reviewee name"]
  cycle: ["Review Cycle name"]
  team: ["Team - Reviewee"]
  position: ["Position - Reviewee"]
  reviewer: ["Reviewer's name", "Reviewers name"]
  comment: ["Response comment"]
  feedback_type: ["Feedback type"]
  question: ["Question"]
  question_description: ["Question description"]
  launch_date: ["Review cycle launch date"]

# Display labels for feedback type codes. Unlisted codes are shown as-is.
sections:
  self_shared_feedback: Employee Review
  auto_shared_feedback: Supervisor Review
  shared_feedback: Supervisor Review

# Sheet to read; empty means the first sheet.
sheet: ""

# Directory created next to the input file when --output-dir is not given.
output_dir_name: generated_pdfs
`

// Columns maps logical field names to accepted header aliases.
type Columns map[string][]string

// Aliases returns the header aliases for a logical field.
func (c Columns) Aliases(field string) []string {
	return c[field]
}

// Config models the YAML configuration file.
type Config struct {
	Columns       Columns           `yaml:"columns"`
	Sections      map[string]string `yaml:"sections"`
	Sheet         string            `yaml:"sheet"`
	OutputDirName string            `yaml:"output_dir_name"`
}

// SectionLabel returns the display label for a feedback type code.
func (c *Config) SectionLabel(feedbackType string) string {
	code := strings.TrimSpace(feedbackType)
	if code == "" {
		return ""
	}
	if label, ok := c.Sections[code]; ok {
		return label
	}
	return code
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err != nil {
		panic(fmt.Sprintf("config: invalid default configuration: %v", err))
	}
	return &cfg
}

// Load reads a YAML file and layers it over the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.merge(override)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	for field, aliases := range o.Columns {
		if len(aliases) > 0 {
			c.Columns[field] = aliases
		}
	}
	for code, label := range o.Sections {
		c.Sections[code] = label
	}
	if o.Sheet != "" {
		c.Sheet = o.Sheet
	}
	if o.OutputDirName != "" {
		c.OutputDirName = o.OutputDirName
	}
}

// Validate checks that every required field has at least one non-blank alias.
func (c *Config) Validate() error {
	known := make(map[string]bool, len(RequiredFields)+len(OptionalFields))
	for _, f := range RequiredFields {
		known[f] = true
	}
	for _, f := range OptionalFields {
		known[f] = true
	}
	for field := range c.Columns {
		if !known[field] {
			return fmt.Errorf("unknown column field %q", field)
		}
	}
	for _, field := range RequiredFields {
		ok := false
		for _, alias := range c.Columns[field] {
			if strings.TrimSpace(alias) != "" {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("column %q has no header alias", field)
		}
	}
	if strings.ContainsAny(c.OutputDirName, `/\`) {
		return fmt.Errorf("output_dir_name %q must be a plain directory name", c.OutputDirName)
	}
	return nil
}
