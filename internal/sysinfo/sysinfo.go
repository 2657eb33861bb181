// internal/sysinfo/sysinfo.go
package sysinfo

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"
)

var (
	// ErrUnsupported is returned by accessors that have no meaning on the
	// running platform (a Windows version on Linux, a uid on Windows).
	ErrUnsupported = errors.New("not supported on this platform")

	ErrUnknownAttribute = errors.New("unknown attribute")
)

// Accessor returns the string form of one attribute.
type Accessor func() (string, error)

type Options struct {
	Now       func() time.Time
	StartedAt time.Time

	// ReadFile replaces os.ReadFile for the procfs readers in tests.
	ReadFile func(path string) (string, error)
}

// Registry maps dotted attribute paths ("sys.argv", "os.getpid") to accessors.
// It is filled once by NewRegistry and only read afterwards.
type Registry struct {
	opts      Options
	accessors map[string]Accessor
}

func NewRegistry(opts Options) *Registry {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.StartedAt.IsZero() {
		opts.StartedAt = processStart
	}
	if opts.ReadFile == nil {
		opts.ReadFile = defaultReadFile
	}

	r := &Registry{
		opts:      opts,
		accessors: map[string]Accessor{},
	}

	r.registerRuntime()
	r.registerOS()
	r.registerPlatform()
	r.registerTime()

	// Platform specific accessors default to unsupported and are replaced
	// by registerNative where the running OS provides them.
	for _, p := range nativePaths {
		r.Register(p, unsupported)
	}
	registerNative(r)

	return r
}

// Register installs or replaces the accessor for path.
func (r *Registry) Register(path string, fn Accessor) {
	r.accessors[path] = fn
}

func (r *Registry) Lookup(path string) (Accessor, bool) {
	fn, ok := r.accessors[path]
	return fn, ok
}

func (r *Registry) Has(path string) bool {
	_, ok := r.accessors[path]
	return ok
}

// Get resolves path. Accessor errors are returned wrapped with the path.
func (r *Registry) Get(path string) (string, error) {
	fn, ok := r.accessors[path]
	if !ok {
		return "", fmt.Errorf("%s: %w", path, ErrUnknownAttribute)
	}
	v, err := fn()
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Paths lists every registered path, sorted.
func (r *Registry) Paths() []string {
	out := make([]string, 0, len(r.accessors))
	for p := range r.accessors {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

var processStart = time.Now()

// nativePaths are resolved by OS specific files.
var nativePaths = []string{
	"os.getpgrp",
	"os.statvfs",
	"platform.system",
	"platform.node",
	"platform.release",
	"platform.version",
	"platform.machine",
	"platform.uname",
	"platform.win32_ver",
	"platform.mac_ver",
	"platform.os_release",
}

func unsupported() (string, error) {
	return "", ErrUnsupported
}

func defaultReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
