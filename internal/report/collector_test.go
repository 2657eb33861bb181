package report

import (
	"errors"
	"testing"

	"gatewayinfo/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// stubResolver answers from a map; "x.panics" panics and missing paths fail.
type stubResolver map[string]string

func (s stubResolver) Get(path string) (string, error) {
	if path == "x.panics" {
		panic("boom")
	}
	v, ok := s[path]
	if !ok {
		return "", errors.New("absent")
	}
	return v, nil
}

func TestResolveOneEntryPerName(t *testing.T) {
	c := NewCollector(Options{Resolver: stubResolver{"x.a": "1", "x.c": "3"}})

	got := c.Resolve("k", "x", []string{"a", "missing", "panics", "c"})
	assert.Equal(t, []Entry{
		{Label: "x.a", Value: "1"},
		{Label: "x.missing", Value: ""},
		{Label: "x.panics", Value: ""},
		{Label: "x.c", Value: "3"},
	}, got)
}

func TestResolveWithoutResolver(t *testing.T) {
	c := NewCollector(Options{})
	got := c.Resolve("k", "x", []string{"a", "b"})
	assert.Equal(t, []Entry{{Label: "x.a"}, {Label: "x.b"}}, got)
}

func TestResolveLogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := NewCollector(Options{Resolver: stubResolver{}, Logger: zap.New(core)})

	c.Resolve("os", "os", []string{"gone"})

	entries := logs.FilterMessage("attribute unresolved").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "os.gone", entries[0].ContextMap()["attribute"])
}

func TestEnvironmentVariablesSortedAndEscaped(t *testing.T) {
	c := NewCollector(Options{
		Escape:  HTMLEscaper,
		Environ: func() []string { return []string{"ZED=1", "ALPHA=a<b", "=C:=C:\\dir", "MID=x=y"} },
	})

	got, err := c.EnvironmentVariables()
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Label: "=C:", Value: "C:\\dir"},
		{Label: "ALPHA", Value: "a&lt;b"},
		{Label: "MID", Value: "x=y"},
		{Label: "ZED", Value: "1"},
	}, got)
}

func TestEnvironmentEnumerationFailure(t *testing.T) {
	c := NewCollector(Options{Environ: func() []string { return []string{"OK=1", "broken"} }})
	_, err := c.EnvironmentVariables()
	assert.True(t, errors.Is(err, ErrEnumeration))

	_, err = c.Build(Vars{})
	assert.True(t, errors.Is(err, ErrEnumeration))
}

func TestRequestVariables(t *testing.T) {
	c := NewCollector(Options{Escape: HTMLEscaper})

	got, err := c.RequestVariables(Vars{
		"b.flag":      true,
		"SCRIPT_NAME": "/app",
		"a.count":     3,
		"QUOTE":       `say "hi" & 'bye'`,
	})
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Label: "QUOTE", Value: "say &quot;hi&quot; &amp; &#x27;bye&#x27;"},
		{Label: "SCRIPT_NAME", Value: "/app"},
		{Label: "a.count", Value: "3"},
		{Label: "b.flag", Value: "true"},
	}, got)

	_, err = c.RequestVariables(nil)
	assert.True(t, errors.Is(err, ErrEnumeration))
}

func TestNoEscapeKeepsValuesVerbatim(t *testing.T) {
	c := NewCollector(Options{Escape: NoEscape})
	got, err := c.RequestVariables(Vars{"V": "<b>&\"</b>"})
	require.NoError(t, err)
	assert.Equal(t, "<b>&\"</b>", got[0].Value)
}

func TestBuildOrdersSectionsBySortKey(t *testing.T) {
	cat := catalog.New(
		catalog.Group{Order: 60, Key: catalog.KeyTime, Title: "Time", Prefix: "time", Names: []string{"now"}},
		catalog.Group{Order: 50, Key: catalog.KeyRequest, Title: "Request Variables"},
		catalog.Group{Order: 10, Key: catalog.KeySystem, Title: "System", Prefix: "sys", Names: []string{"argv", "gone"}},
		catalog.Group{Order: 40, Key: catalog.KeyEnv, Title: "Environment Variables"},
	)
	c := NewCollector(Options{
		Catalog:  cat,
		Resolver: stubResolver{"sys.argv": "[gatewayinfo]", "time.now": "noon"},
		Environ:  func() []string { return []string{"HOME=/root"} },
	})

	rep, err := c.Build(Vars{"SCRIPT_NAME": "/app"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, rep.Title)

	var titles []string
	for _, s := range rep.Sections {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"System", "Environment Variables", "Request Variables", "Time"}, titles)

	sys, ok := rep.Section("System")
	require.True(t, ok)
	assert.Equal(t, []Entry{{Label: "sys.argv", Value: "[gatewayinfo]"}, {Label: "sys.gone", Value: ""}}, sys.Entries)

	req, _ := rep.Section("Request Variables")
	v, ok := req.Value("SCRIPT_NAME")
	require.True(t, ok)
	assert.Equal(t, "/app", v)
}

func TestBuildDefaultsToBuiltinCatalog(t *testing.T) {
	c := NewCollector(Options{Title: "Custom", Resolver: stubResolver{}})
	rep, err := c.Build(Vars{})
	require.NoError(t, err)
	assert.Equal(t, "Custom", rep.Title)
	require.Len(t, rep.Sections, 6)
	assert.Equal(t, "System", rep.Sections[0].Title)
	assert.Equal(t, "Time", rep.Sections[5].Title)
}

func TestHTMLEscaper(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt; &amp; &#x27;", HTMLEscaper(`<script>alert("x")</script> & '`))
	assert.Equal(t, "plain", HTMLEscaper("plain"))
}
