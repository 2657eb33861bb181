package sysinfo

func registerNative(r *Registry) {
	registerUnix(r)

	r.Register("platform.os_release", func() (string, error) {
		b, err := r.opts.ReadFile("/etc/os-release")
		if err != nil {
			b, err = r.opts.ReadFile("/usr/lib/os-release")
		}
		if err != nil {
			return "", err
		}
		return parseOSRelease(b)
	})
}
