//go:build !unix

package terminal

import "time"

// timedWait is false because reads cannot be bounded here
const timedWait = false

// waitReadable cannot wait on a console handle here; reads simply block
func waitReadable(_ int, _ time.Duration) (bool, error) {
	return true, nil
}
