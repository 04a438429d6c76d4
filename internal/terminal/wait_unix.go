//go:build unix

package terminal

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

const timedWait = true

// waitReadable uses select(2); poll(2) does not work with ttys on darwin
func waitReadable(fd int, timeout time.Duration) (bool, error) {
	var set unix.FdSet
	set.Zero()
	set.Set(fd)

	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	n, err := unix.Select(fd+1, &set, nil, nil, &tv)
	if errors.Is(err, unix.EINTR) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
