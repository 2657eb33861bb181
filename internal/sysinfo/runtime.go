package sysinfo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strconv"

	"github.com/dustin/go-humanize"
)

func (r *Registry) registerRuntime() {
	r.Register("sys.argv", func() (string, error) {
		return fmt.Sprintf("%q", os.Args), nil
	})
	r.Register("sys.executable", os.Executable)
	r.Register("sys.version", constant(runtime.Version()))
	r.Register("sys.compiler", constant(runtime.Compiler))
	r.Register("sys.goos", constant(runtime.GOOS))
	r.Register("sys.goarch", constant(runtime.GOARCH))
	r.Register("sys.maxprocs", func() (string, error) {
		return strconv.Itoa(runtime.GOMAXPROCS(0)), nil
	})
	r.Register("sys.numcpu", func() (string, error) {
		return strconv.Itoa(runtime.NumCPU()), nil
	})
	r.Register("sys.numgoroutine", func() (string, error) {
		return strconv.Itoa(runtime.NumGoroutine()), nil
	})
	r.Register("sys.numcgocall", func() (string, error) {
		return strconv.FormatInt(runtime.NumCgoCall(), 10), nil
	})
	r.Register("sys.byteorder", func() (string, error) {
		if binary.NativeEndian.Uint16([]byte{1, 0}) == 1 {
			return "little", nil
		}
		return "big", nil
	})
	r.Register("sys.intsize", constant(strconv.Itoa(strconv.IntSize)))
	r.Register("sys.pagesize", func() (string, error) {
		return strconv.Itoa(os.Getpagesize()), nil
	})
	r.Register("sys.module", func() (string, error) {
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return "", errors.New("build info not embedded")
		}
		return bi.Main.Path + " " + bi.Main.Version, nil
	})
	r.Register("sys.vcs.revision", buildSetting("vcs.revision"))
	r.Register("sys.memstats.alloc", memStat(func(ms *runtime.MemStats) string {
		return humanize.IBytes(ms.Alloc)
	}))
	r.Register("sys.memstats.sys", memStat(func(ms *runtime.MemStats) string {
		return humanize.IBytes(ms.Sys)
	}))
	r.Register("sys.memstats.numgc", memStat(func(ms *runtime.MemStats) string {
		return strconv.FormatUint(uint64(ms.NumGC), 10)
	}))
}

func constant(v string) Accessor {
	return func() (string, error) { return v, nil }
}

func buildSetting(key string) Accessor {
	return func() (string, error) {
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return "", errors.New("build info not embedded")
		}
		for _, s := range bi.Settings {
			if s.Key == key {
				return s.Value, nil
			}
		}
		return "", fmt.Errorf("build setting %s not recorded", key)
	}
}

func memStat(pick func(ms *runtime.MemStats) string) Accessor {
	return func() (string, error) {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return pick(&ms), nil
	}
}
