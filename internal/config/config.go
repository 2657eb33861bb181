package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenAddr        string
	MountPath         string
	ReportTitle       string
	RequestTimeout    time.Duration
	ReadHeaderTimeout time.Duration
	MaxHeaderBytes    int
	AllowedSubnets    []string
	LogLevel          string
	LogFormat         string
}

func LoadFromEnv() Config {
	return Config{
		ListenAddr:        env("LISTEN_ADDR", "0.0.0.0:3000"),
		MountPath:         normalizeMount(env("MOUNT_PATH", "/")),
		ReportTitle:       env("REPORT_TITLE", "WSGI Info"),
		RequestTimeout:    envDuration("REQUEST_TIMEOUT", 3*time.Second),
		ReadHeaderTimeout: envDuration("READ_HEADER_TIMEOUT", 2*time.Second),
		MaxHeaderBytes:    envInt("MAX_HEADER_BYTES", 64<<10),
		AllowedSubnets:    splitCSV(env("ALLOWED_SUBNETS", "")),
		LogLevel:          env("LOG_LEVEL", "info"),
		LogFormat:         env("LOG_FORMAT", "json"),
	}
}

func env(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	// bare integers are seconds
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// normalizeMount returns "/" or a path with a leading and no trailing slash.
func normalizeMount(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return "/"
	}
	return "/" + p
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
