// Package config loads declarative pairing rule files. A file configures
// rules for a single language; unknown fields are rejected so typos fail
// at load time rather than silently dropping a rule.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/autopair"
)

// Validation errors surfaced at load time.
var (
	ErrMissingLanguage = errors.New("config: rule file needs a language")
	ErrNoRules         = errors.New("config: rule file defines no rules")
)

// File is the top-level structure of a rules YAML file.
type File struct {
	Language string `yaml:"language"`
	Rules    []Rule `yaml:"rules"`
}

// Rule is one declarative rule entry. Rule files only author query-based
// matchers; raw predicates are Go code and stay in Go.
type Rule struct {
	Trigger              string   `yaml:"trigger"`
	Pattern              string   `yaml:"pattern"`
	Excludes             []string `yaml:"excludes"`
	Close                string   `yaml:"close"`
	Pad                  bool     `yaml:"pad"`
	InStringsAndComments bool     `yaml:"in_strings_and_comments"`
	ActivateInGoodParse  bool     `yaml:"activate_in_good_parse"`
}

// Load parses a rules file from a reader.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("config: parse rules file: %w", err)
	}

	if f.Language == "" {
		return nil, ErrMissingLanguage
	}
	if len(f.Rules) == 0 {
		return nil, ErrNoRules
	}

	return &f, nil
}

// LoadFile parses the rules file at path.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open rules file: %w", err)
	}
	defer fh.Close()

	return Load(fh)
}

// Specs converts the file into rule specs ready for Registry.Define.
// Field-level validation (unknown triggers, missing close, bad patterns)
// stays with Define, which compiles the patterns.
func (f *File) Specs() []autopair.RuleSpec {
	specs := make([]autopair.RuleSpec, 0, len(f.Rules))
	for _, r := range f.Rules {
		specs = append(specs, autopair.RuleSpec{
			Language:             f.Language,
			Trigger:              autopair.TriggerClass(r.Trigger),
			Pattern:              r.Pattern,
			Excludes:             r.Excludes,
			Close:                r.Close,
			Pad:                  r.Pad,
			InStringsAndComments: r.InStringsAndComments,
			ActivateInGoodParse:  r.ActivateInGoodParse,
		})
	}
	return specs
}
