package report

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gatewayinfo/internal/catalog"

	"go.uber.org/zap"
)

// ErrEnumeration means the environment or request variables could not be
// listed. It aborts the whole build.
var ErrEnumeration = errors.New("variable enumeration failed")

// DefaultTitle heads every report unless configured otherwise.
const DefaultTitle = "WSGI Info"

// Resolver looks up one dotted attribute path. *sysinfo.Registry implements it.
type Resolver interface {
	Get(path string) (string, error)
}

type Options struct {
	Title    string
	Catalog  catalog.Catalog
	Resolver Resolver
	Escape   Escaper
	Environ  func() []string
	Logger   *zap.Logger
}

type Collector struct {
	title    string
	catalog  catalog.Catalog
	resolver Resolver
	escape   Escaper
	environ  func() []string
	log      *zap.Logger
}

func NewCollector(opts Options) *Collector {
	c := &Collector{
		title:    opts.Title,
		catalog:  opts.Catalog,
		resolver: opts.Resolver,
		escape:   opts.Escape,
		environ:  opts.Environ,
		log:      opts.Logger,
	}
	if c.title == "" {
		c.title = DefaultTitle
	}
	if len(c.catalog.Groups()) == 0 {
		c.catalog = catalog.Default()
	}
	if c.escape == nil {
		c.escape = NoEscape
	}
	if c.environ == nil {
		c.environ = os.Environ
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

// Resolve returns exactly one entry per name, in order. Failed lookups keep
// their entry with an empty value.
func (c *Collector) Resolve(key, prefix string, names []string) []Entry {
	g := catalog.Group{Key: key, Prefix: prefix}
	out := make([]Entry, 0, len(names))
	for _, n := range names {
		path := g.Path(n)
		v, err := c.tryResolve(path)
		if err != nil {
			c.log.Debug("attribute unresolved",
				zap.String("section", key),
				zap.String("attribute", path),
				zap.Error(err))
			v = ""
		}
		out = append(out, Entry{Label: c.escape(path), Value: c.escape(v)})
	}
	return out
}

func (c *Collector) tryResolve(path string) (v string, err error) {
	if c.resolver == nil {
		return "", errors.New("no resolver configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			v, err = "", fmt.Errorf("accessor panicked: %v", rec)
		}
	}()
	return c.resolver.Get(path)
}

// EnvironmentVariables lists the process environment sorted by name.
func (c *Collector) EnvironmentVariables() ([]Entry, error) {
	env := c.environ()
	kv := make(map[string]string, len(env))
	for _, e := range env {
		k, v, ok := splitEnv(e)
		if !ok {
			return nil, fmt.Errorf("environ entry %q: %w", e, ErrEnumeration)
		}
		kv[k] = v
	}
	return c.sorted(kv), nil
}

// RequestVariables lists vars sorted by name, each value in its fmt.Sprint form.
func (c *Collector) RequestVariables(vars Vars) ([]Entry, error) {
	if vars == nil {
		return nil, fmt.Errorf("no request variables: %w", ErrEnumeration)
	}
	kv := make(map[string]string, len(vars))
	for k, v := range vars {
		kv[k] = fmt.Sprint(v)
	}
	return c.sorted(kv), nil
}

// Build collects every catalog group into a Report ordered by sort key.
func (c *Collector) Build(vars Vars) (Report, error) {
	rep := Report{Title: c.escape(c.title)}

	for _, g := range c.catalog.Groups() {
		sec := Section{Order: g.Order, Key: g.Key, Title: c.escape(g.Title)}

		switch g.Key {
		case catalog.KeyEnv:
			entries, err := c.EnvironmentVariables()
			if err != nil {
				return Report{}, err
			}
			sec.Entries = entries
		case catalog.KeyRequest:
			entries, err := c.RequestVariables(vars)
			if err != nil {
				return Report{}, err
			}
			sec.Entries = entries
		default:
			sec.Entries = c.Resolve(g.Key, g.Prefix, g.Names)
		}

		rep.Sections = append(rep.Sections, sec)
	}

	sort.SliceStable(rep.Sections, func(i, j int) bool {
		return rep.Sections[i].Order < rep.Sections[j].Order
	})
	return rep, nil
}

func (c *Collector) sorted(kv map[string]string) []Entry {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, Entry{Label: c.escape(k), Value: c.escape(kv[k])})
	}
	return out
}

func splitEnv(kv string) (string, string, bool) {
	// Windows keeps per-drive entries such as "=C:=C:\dir".
	start := 0
	if strings.HasPrefix(kv, "=") {
		start = 1
	}
	i := strings.IndexByte(kv[start:], '=')
	if i < 0 {
		return "", "", false
	}
	i += start
	return kv[:i], kv[i+1:], true
}
