// Package report turns the attribute catalog, the process environment and the
// request variables into an ordered Report.
package report

import (
	"strings"
)

// Entry is one label/value row. Value is already escaped for the output
// format the report was collected for, or empty when resolution failed.
type Entry struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type Section struct {
	Order   int     `yaml:"-"`
	Key     string  `yaml:"key"`
	Title   string  `yaml:"title"`
	Entries []Entry `yaml:"entries"`
}

type Report struct {
	Title    string    `yaml:"title"`
	Sections []Section `yaml:"sections"`
}

// Section returns the section with the given title.
func (r Report) Section(title string) (Section, bool) {
	for _, s := range r.Sections {
		if s.Title == title {
			return s, true
		}
	}
	return Section{}, false
}

// Value returns the value of the first entry labelled label.
func (s Section) Value(label string) (string, bool) {
	for _, e := range s.Entries {
		if e.Label == label {
			return e.Value, true
		}
	}
	return "", false
}

// Vars is the request variable mapping supplied by the hosting layer.
type Vars map[string]any

// Escaper makes a string safe to embed in one output format.
type Escaper func(string) string

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

func HTMLEscaper(s string) string {
	return htmlReplacer.Replace(s)
}

func NoEscape(s string) string {
	return s
}
