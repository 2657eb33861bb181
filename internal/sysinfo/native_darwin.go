package sysinfo

import "golang.org/x/sys/unix"

func registerNative(r *Registry) {
	registerUnix(r)

	r.Register("platform.mac_ver", func() (string, error) {
		return unix.Sysctl("kern.osproductversion")
	})
}
