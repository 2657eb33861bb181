// Package catalog holds the static list of attributes the report resolves,
// grouped by section.
package catalog

import (
	"sort"
)

// Group keys. Dynamic groups have no Names; the collector enumerates them.
const (
	KeySystem   = "runtime"
	KeyOS       = "os"
	KeyPlatform = "platform-info"
	KeyEnv      = "environ"
	KeyRequest  = "request"
	KeyTime     = "time"
)

type Group struct {
	Order  int
	Key    string
	Title  string
	Prefix string
	Names  []string
}

// Dynamic reports whether the group is enumerated at collection time
// instead of resolved name by name.
func (g Group) Dynamic() bool {
	return g.Key == KeyEnv || g.Key == KeyRequest
}

// Path returns the dotted lookup path of a name in this group.
func (g Group) Path(name string) string {
	if g.Prefix == "" {
		return name
	}
	return g.Prefix + "." + name
}

type Catalog struct {
	groups []Group
}

// New copies groups, so later changes to the argument do not leak in.
func New(groups ...Group) Catalog {
	out := make([]Group, len(groups))
	for i, g := range groups {
		g.Names = append([]string(nil), g.Names...)
		out[i] = g
	}
	return Catalog{groups: out}
}

// Default returns the built-in catalog.
func Default() Catalog {
	return New(
		Group{
			Order:  10,
			Key:    KeySystem,
			Title:  "System",
			Prefix: "sys",
			Names: []string{
				"argv",
				"executable",
				"version",
				"compiler",
				"goos",
				"goarch",
				"maxprocs",
				"numcpu",
				"numgoroutine",
				"numcgocall",
				"byteorder",
				"intsize",
				"pagesize",
				"module",
				"vcs.revision",
				"memstats.alloc",
				"memstats.sys",
				"memstats.numgc",
			},
		},
		Group{
			Order:  20,
			Key:    KeyOS,
			Title:  "OS",
			Prefix: "os",
			Names: []string{
				"getpid",
				"getppid",
				"getuid",
				"geteuid",
				"getgid",
				"getegid",
				"getgroups",
				"getpgrp",
				"getwd",
				"hostname",
				"tempdir",
				"userhomedir",
				"usercachedir",
				"userconfigdir",
				"username",
				"loadavg",
				"meminfo",
				"statvfs",
			},
		},
		Group{
			Order:  30,
			Key:    KeyPlatform,
			Title:  "Platform",
			Prefix: "platform",
			Names: []string{
				"system",
				"node",
				"release",
				"version",
				"machine",
				"architecture",
				"uname",
				"serial_ports",
				"win32_ver",
				"mac_ver",
				"os_release",
			},
		},
		Group{Order: 40, Key: KeyEnv, Title: "Environment Variables"},
		Group{Order: 50, Key: KeyRequest, Title: "Request Variables"},
		Group{
			Order:  60,
			Key:    KeyTime,
			Title:  "Time",
			Prefix: "time",
			Names: []string{
				"time",
				"ctime",
				"gmtime",
				"localtime",
				"tzname",
				"timezone",
				"uptime",
			},
		},
	)
}

// Groups returns a copy of the groups sorted by ascending Order.
func (c Catalog) Groups() []Group {
	out := New(c.groups...).groups
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func (c Catalog) Lookup(key string) (Group, bool) {
	for _, g := range c.groups {
		if g.Key == key {
			g.Names = append([]string(nil), g.Names...)
			return g, true
		}
	}
	return Group{}, false
}

// Validate returns the dotted paths of static names that known does not
// recognise, in catalog order.
func (c Catalog) Validate(known func(path string) bool) []string {
	var missing []string
	for _, g := range c.Groups() {
		for _, n := range g.Names {
			if p := g.Path(n); !known(p) {
				missing = append(missing, p)
			}
		}
	}
	return missing
}
