//go:build linux || darwin

package sysinfo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

func registerUnix(r *Registry) {
	r.Register("os.getpgrp", func() (string, error) {
		return strconv.Itoa(unix.Getpgrp()), nil
	})
	r.Register("os.statvfs", func() (string, error) {
		return readDisk("/")
	})

	r.Register("platform.system", unameField(func(u *unix.Utsname) []byte { return u.Sysname[:] }))
	r.Register("platform.node", unameField(func(u *unix.Utsname) []byte { return u.Nodename[:] }))
	r.Register("platform.release", unameField(func(u *unix.Utsname) []byte { return u.Release[:] }))
	r.Register("platform.version", unameField(func(u *unix.Utsname) []byte { return u.Version[:] }))
	r.Register("platform.machine", unameField(func(u *unix.Utsname) []byte { return u.Machine[:] }))
	r.Register("platform.uname", func() (string, error) {
		var u unix.Utsname
		if err := unix.Uname(&u); err != nil {
			return "", err
		}
		return strings.Join([]string{
			unix.ByteSliceToString(u.Sysname[:]),
			unix.ByteSliceToString(u.Nodename[:]),
			unix.ByteSliceToString(u.Release[:]),
			unix.ByteSliceToString(u.Version[:]),
			unix.ByteSliceToString(u.Machine[:]),
		}, " "), nil
	})
}

func unameField(pick func(u *unix.Utsname) []byte) Accessor {
	return func() (string, error) {
		var u unix.Utsname
		if err := unix.Uname(&u); err != nil {
			return "", err
		}
		return unix.ByteSliceToString(pick(&u)), nil
	}
}

func readDisk(path string) (string, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return "", err
	}
	bsize := uint64(st.Bsize)
	return fmt.Sprintf("%s free of %s",
		humanize.IBytes(uint64(st.Bavail)*bsize), humanize.IBytes(uint64(st.Blocks)*bsize)), nil
}
