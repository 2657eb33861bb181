package sysinfo

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.bug.st/serial"
)

func (r *Registry) registerPlatform() {
	r.Register("platform.architecture", func() (string, error) {
		return fmt.Sprintf("%dbit %s", strconv.IntSize, runtime.GOARCH), nil
	})
	r.Register("platform.serial_ports", func() (string, error) {
		ports, err := serial.GetPortsList()
		if err != nil {
			return "", err
		}
		return strings.Join(ports, ", "), nil
	})
}

func (r *Registry) registerTime() {
	now := r.opts.Now
	r.Register("time.time", func() (string, error) {
		return strconv.FormatFloat(float64(now().UnixNano())/1e9, 'f', 6, 64), nil
	})
	r.Register("time.ctime", func() (string, error) {
		return now().Format(time.ANSIC), nil
	})
	r.Register("time.gmtime", func() (string, error) {
		return now().UTC().Format(time.RFC3339), nil
	})
	r.Register("time.localtime", func() (string, error) {
		return now().Format(time.RFC3339), nil
	})
	r.Register("time.tzname", func() (string, error) {
		name, _ := now().Zone()
		return name, nil
	})
	r.Register("time.timezone", func() (string, error) {
		return now().Format("-07:00"), nil
	})
	r.Register("time.uptime", func() (string, error) {
		t := now()
		if t.Before(r.opts.StartedAt) {
			return "", errors.New("clock is behind process start")
		}
		return humanize.RelTime(r.opts.StartedAt, t, "ago", "from now"), nil
	})
}

// parseOSRelease extracts PRETTY_NAME (or NAME) from an os-release file.
func parseOSRelease(content string) (string, error) {
	vals := map[string]string{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if uq, err := strconv.Unquote(v); err == nil {
			v = uq
		} else {
			v = strings.Trim(v, `"'`)
		}
		vals[k] = v
	}
	if v := vals["PRETTY_NAME"]; v != "" {
		return v, nil
	}
	if v := vals["NAME"]; v != "" {
		return v, nil
	}
	return "", errors.New("os-release has no NAME")
}
