//go:build !linux && !darwin && !windows

package sysinfo

import "runtime"

func registerNative(r *Registry) {
	r.Register("platform.system", constant(runtime.GOOS))
}
