// Package safety implements the pre-analysis classification gates as a small
// keyword rule engine: an ordered table of categories, each with a marker set
// and a distinct-match threshold. The identity gate fires on a single marker
// because a false negative there is a privacy leak; the scam gate requires
// two distinct markers so one urgency phrase on a legitimate notice does not
// block it.
package safety

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rsharda/civic-translator/internal/core/domain"
)

//go:embed rules.yaml
var defaultRules []byte

type category struct {
	Name      string   `yaml:"name"`
	Threshold int      `yaml:"threshold"`
	Markers   []string `yaml:"markers"`
}

type ruleTable struct {
	Categories []category `yaml:"categories"`
}

type Classifier struct {
	categories []category
}

// NewClassifier builds the classifier from the embedded rule table.
func NewClassifier() (*Classifier, error) {
	return newFromYAML(defaultRules)
}

// NewClassifierFromFile builds the classifier from an external rule table,
// letting marker sets and thresholds be tuned without a rebuild.
func NewClassifierFromFile(path string) (*Classifier, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read safety rules: %w", err)
	}
	return newFromYAML(raw)
}

func newFromYAML(raw []byte) (*Classifier, error) {
	var table ruleTable
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("parse safety rules: %w", err)
	}
	if len(table.Categories) == 0 {
		return nil, fmt.Errorf("safety rules define no categories")
	}
	for _, c := range table.Categories {
		if c.Name == "" || c.Threshold <= 0 || len(c.Markers) == 0 {
			return nil, fmt.Errorf("safety category %q is incomplete", c.Name)
		}
	}
	return &Classifier{categories: table.Categories}, nil
}

// Classify evaluates the gates in table order against the extracted text,
// case-insensitively. The first category reaching its threshold wins.
func (c *Classifier) Classify(text string) domain.Verdict {
	lowered := strings.ToLower(text)
	for _, cat := range c.categories {
		matches := 0
		for _, marker := range cat.Markers {
			if strings.Contains(lowered, marker) {
				matches++
			}
		}
		if matches >= cat.Threshold {
			return domain.Verdict(cat.Name)
		}
	}
	return domain.VerdictNone
}
