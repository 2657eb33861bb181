package sysinfo

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

func (r *Registry) registerOS() {
	r.Register("os.getpid", intValue(os.Getpid))
	r.Register("os.getppid", intValue(os.Getppid))
	r.Register("os.getuid", id(os.Getuid))
	r.Register("os.geteuid", id(os.Geteuid))
	r.Register("os.getgid", id(os.Getgid))
	r.Register("os.getegid", id(os.Getegid))
	r.Register("os.getgroups", func() (string, error) {
		gs, err := os.Getgroups()
		if err != nil {
			return "", err
		}
		return fmt.Sprint(gs), nil
	})
	r.Register("os.getwd", os.Getwd)
	r.Register("os.hostname", os.Hostname)
	r.Register("os.tempdir", func() (string, error) { return os.TempDir(), nil })
	r.Register("os.userhomedir", os.UserHomeDir)
	r.Register("os.usercachedir", os.UserCacheDir)
	r.Register("os.userconfigdir", os.UserConfigDir)
	r.Register("os.username", func() (string, error) {
		u, err := user.Current()
		if err != nil {
			return "", err
		}
		return u.Username, nil
	})
	r.Register("os.loadavg", r.readLoadAvg)
	r.Register("os.meminfo", r.readMem)
}

func intValue(fn func() int) Accessor {
	return func() (string, error) { return strconv.Itoa(fn()), nil }
}

// id wraps the uid/gid getters, which return -1 where the concept is absent.
func id(fn func() int) Accessor {
	return func() (string, error) {
		v := fn()
		if v < 0 {
			return "", ErrUnsupported
		}
		return strconv.Itoa(v), nil
	}
}

// readLoadAvg returns the 1, 5 and 15 minute load averages from procfs.
func (r *Registry) readLoadAvg() (string, error) {
	b, err := r.opts.ReadFile("/proc/loadavg")
	if err != nil {
		return "", err
	}
	fields := strings.Fields(b)
	if len(fields) < 3 {
		return "", errors.New("bad loadavg")
	}
	for _, f := range fields[:3] {
		if _, err := strconv.ParseFloat(f, 64); err != nil {
			return "", fmt.Errorf("bad loadavg: %w", err)
		}
	}
	return strings.Join(fields[:3], " "), nil
}

func (r *Registry) readMem() (string, error) {
	b, err := r.opts.ReadFile("/proc/meminfo")
	if err != nil {
		return "", err
	}
	var memTotalKB, memAvailKB uint64
	sc := bufio.NewScanner(strings.NewReader(b))
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "MemTotal:") {
			fmt.Sscanf(line, "MemTotal: %d kB", &memTotalKB)
		}
		if strings.HasPrefix(line, "MemAvailable:") {
			fmt.Sscanf(line, "MemAvailable: %d kB", &memAvailKB)
		}
	}
	if memTotalKB == 0 {
		return "", errors.New("MemTotal not found")
	}
	return fmt.Sprintf("total %s, available %s",
		humanize.IBytes(memTotalKB*1024), humanize.IBytes(memAvailKB*1024)), nil
}
