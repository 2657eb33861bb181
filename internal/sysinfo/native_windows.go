package sysinfo

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/windows"
)

func registerNative(r *Registry) {
	r.Register("platform.system", constant("Windows"))
	r.Register("platform.node", windows.ComputerName)
	r.Register("platform.machine", constant(runtime.GOARCH))
	r.Register("platform.win32_ver", func() (string, error) {
		v := windows.RtlGetVersion()
		return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber), nil
	})
	r.Register("platform.release", func() (string, error) {
		v := windows.RtlGetVersion()
		return fmt.Sprintf("%d", v.MajorVersion), nil
	})
}
