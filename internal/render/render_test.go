package render

import (
	"bytes"
	"strings"
	"testing"

	"gatewayinfo/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func collect(t *testing.T, f Format, env []string, vars report.Vars) report.Report {
	t.Helper()
	c := report.NewCollector(report.Options{
		Escape:  f.Escaper(),
		Environ: func() []string { return env },
	})
	rep, err := c.Build(vars)
	require.NoError(t, err)
	return rep
}

func sample() report.Report {
	return report.Report{
		Title: "WSGI Info",
		Sections: []report.Section{
			{Order: 10, Title: "System", Entries: []report.Entry{
				{Label: "sys.argv", Value: `["gatewayinfo"]`},
				{Label: "sys.gone", Value: ""},
			}},
			{Order: 20, Title: "OS", Entries: []report.Entry{
				{Label: "os.getpid", Value: "42"},
			}},
		},
	}
}

func TestText(t *testing.T) {
	want := "WSGI Info\n\n" +
		"System\n" +
		"sys.argv\n[\"gatewayinfo\"]\n\n" +
		"sys.gone\n\n\n" +
		"OS\n" +
		"os.getpid\n42\n\n" +
		"\n"
	assert.Equal(t, want, Text(sample()))
}

func TestHTMLShellAndRows(t *testing.T) {
	out := HTML(sample())

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>WSGI Info</title>")
	assert.Contains(t, out, "<h2>System</h2>\n<table>\n<tr><th>sys.argv</th><td>[\"gatewayinfo\"]</td></tr>\n<tr><th>sys.gone</th><td></td></tr>\n</table>")
	assert.Equal(t, 2, strings.Count(out, "<table>"))
	assert.Equal(t, 2, strings.Count(out, "</table>"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</div>\n</body>\n</html>"))
}

func TestHTMLIsIdempotent(t *testing.T) {
	rep := sample()
	assert.Equal(t, HTML(rep), HTML(rep))
	assert.Equal(t, Text(rep), Text(rep))
}

func TestSpecialCharactersRoundTrip(t *testing.T) {
	env := []string{"PAYLOAD=<script>alert(\"x\") & more</script>"}

	html := HTML(collect(t, FormatHTML, env, report.Vars{}))
	assert.Contains(t, html, "<tr><th>PAYLOAD</th><td>&lt;script&gt;alert(&quot;x&quot;) &amp; more&lt;/script&gt;</td></tr>")
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "&amp;lt;")

	text := Text(collect(t, FormatText, env, report.Vars{}))
	assert.Contains(t, text, "PAYLOAD\n<script>alert(\"x\") & more</script>\n\n")
}

func TestRequestVariableRow(t *testing.T) {
	html := HTML(collect(t, FormatHTML, nil, report.Vars{"SCRIPT_NAME": "/app"}))
	assert.Contains(t, html, "<tr><th>SCRIPT_NAME</th><td>/app</td></tr>")
}

func TestYAMLKeepsOrder(t *testing.T) {
	var decoded struct {
		Title    string `yaml:"title"`
		Sections []struct {
			Title   string         `yaml:"title"`
			Entries []report.Entry `yaml:"entries"`
		} `yaml:"sections"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(YAML(sample())), &decoded))
	assert.Equal(t, "WSGI Info", decoded.Title)
	require.Len(t, decoded.Sections, 2)
	assert.Equal(t, "System", decoded.Sections[0].Title)
	assert.Equal(t, "sys.gone", decoded.Sections[0].Entries[1].Label)
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, Format("pdf"), sample()))
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"html", FormatHTML, false},
		{" TEXT ", FormatText, false},
		{"txt", FormatText, false},
		{"yml", FormatYAML, false},
		{"pdf", "", true},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
	assert.Equal(t, "text/html", FormatHTML.ContentType())
}
