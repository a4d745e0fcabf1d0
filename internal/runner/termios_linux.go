//go:build linux

package runner

import (
	"os"

	"golang.org/x/sys/unix"
)

// disableEcho clears the ECHO flag on the subordinate end before the child
// starts, so scripted input is not copied into the captured output.
func disableEcho(pts *os.File) error {
	t, err := unix.IoctlGetTermios(int(pts.Fd()), unix.TCGETS)
	if err != nil {
		return err
	}
	t.Lflag &^= unix.ECHO
	return unix.IoctlSetTermios(int(pts.Fd()), unix.TCSETS, t)
}
