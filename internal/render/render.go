// Package render serializes a report.Report as HTML, plain text or YAML.
//
// Values reach the renderers already escaped for their format (see
// report.HTMLEscaper); nothing here escapes a second time.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	texttemplate "text/template"

	"gatewayinfo/internal/report"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatHTML Format = "html"
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatText, FormatYAML:
		return f, nil
	case "txt", "plain":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want html, text or yaml)", s)
	}
}

// Escaper is the escaper the collector must use for this format.
func (f Format) Escaper() report.Escaper {
	if f == FormatHTML {
		return report.HTMLEscaper
	}
	return report.NoEscape
}

func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}

//go:embed templates/*
var templateFS embed.FS

var (
	htmlTpl = template.Must(template.ParseFS(templateFS, "templates/report.html"))
	textTpl = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/report.txt"))
)

// htmlView carries pre-escaped strings as template.HTML so html/template
// inserts them verbatim.
type htmlView struct {
	Title    template.HTML
	Sections []htmlSection
}

type htmlSection struct {
	Title   template.HTML
	Entries []htmlEntry
}

type htmlEntry struct {
	Label template.HTML
	Value template.HTML
}

func newHTMLView(rep report.Report) htmlView {
	v := htmlView{Title: template.HTML(rep.Title)}
	for _, s := range rep.Sections {
		hs := htmlSection{Title: template.HTML(s.Title)}
		for _, e := range s.Entries {
			hs.Entries = append(hs.Entries, htmlEntry{
				Label: template.HTML(e.Label),
				Value: template.HTML(e.Value),
			})
		}
		v.Sections = append(v.Sections, hs)
	}
	return v
}

// Write renders rep in format f to w.
func Write(w io.Writer, f Format, rep report.Report) error {
	switch f {
	case FormatHTML:
		return htmlTpl.Execute(w, newHTMLView(rep))
	case FormatText:
		return textTpl.Execute(w, rep)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// HTML returns the full HTML document for rep.
func HTML(rep report.Report) string {
	return mustString(FormatHTML, rep)
}

// Text returns the plain-text report.
func Text(rep report.Report) string {
	return mustString(FormatText, rep)
}

func YAML(rep report.Report) string {
	return mustString(FormatYAML, rep)
}

func mustString(f Format, rep report.Report) string {
	var b strings.Builder
	if err := Write(&b, f, rep); err != nil {
		// templates only range over slices of strings; a failure here is a
		// broken template, not bad input.
		panic(fmt.Sprintf("render %s: %v", f, err))
	}
	return b.String()
}
