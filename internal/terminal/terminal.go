// Package terminal reads single lines of user input with an optional timeout.
//
// When stdin is a terminal the line is collected keystroke by keystroke in raw
// mode, echoing characters and handling backspace locally. Otherwise input is
// read line-buffered. In both modes a timeout bounds the wait for the first
// byte, which lets the caller redraw the screen periodically.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

var (
	// ErrTimeout is returned when no input arrived before the timeout
	ErrTimeout = errors.New("terminal: no input before timeout")

	// ErrInterrupted is returned when Ctrl-C is typed in raw mode
	ErrInterrupted = errors.New("terminal: interrupted")
)

// pollInterval bounds every single wait so cancellation is noticed promptly
const pollInterval = 100 * time.Millisecond

// LineReader reads one line of input at a time
type LineReader interface {
	// ReadLine waits at most timeout for input to start; timeout <= 0 waits forever
	ReadLine(ctx context.Context, timeout time.Duration) (string, error)
	// ReadSecret reads a line without echoing it
	ReadSecret(ctx context.Context) (string, error)
}

// Console is the LineReader for a real stdin
type Console struct {
	in          *os.File
	out         io.Writer
	fd          int
	interactive bool
	buf         *bufio.Reader
}

// NewConsole wraps in, echoing raw-mode input to out
func NewConsole(in *os.File, out io.Writer) *Console {
	fd := int(in.Fd())
	return &Console{
		in:          in,
		out:         out,
		fd:          fd,
		interactive: term.IsTerminal(fd),
		buf:         bufio.NewReader(in),
	}
}

// Interactive reports whether keystroke mode is used
func (c *Console) Interactive() bool {
	return c.interactive
}

// SupportsTimeout reports whether ReadLine can give up waiting.
// Without it a timeout is ignored and reads block until input arrives.
func (c *Console) SupportsTimeout() bool {
	return timedWait
}

// ReadLine implements LineReader
func (c *Console) ReadLine(ctx context.Context, timeout time.Duration) (string, error) {
	if !c.interactive {
		return c.readBuffered(ctx, timeout)
	}
	return c.readRaw(ctx, timeout, true)
}

// ReadSecret implements LineReader
func (c *Console) ReadSecret(ctx context.Context) (string, error) {
	if !c.interactive {
		return c.readBuffered(ctx, 0)
	}
	return c.readRaw(ctx, 0, false)
}

func (c *Console) readBuffered(ctx context.Context, timeout time.Duration) (string, error) {
	if c.buf.Buffered() == 0 {
		ready, err := c.wait(ctx, timeout)
		if err != nil {
			return "", err
		}
		if !ready {
			return "", ErrTimeout
		}
	}

	line, err := c.buf.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return trimEOL(line), nil
		}
		return "", err
	}
	return trimEOL(line), nil
}

func (c *Console) readRaw(ctx context.Context, timeout time.Duration, echo bool) (string, error) {
	state, err := term.MakeRaw(c.fd)
	if err != nil {
		return "", fmt.Errorf("entering raw mode: %w", err)
	}
	defer func() { _ = term.Restore(c.fd, state) }()

	ready, err := c.wait(ctx, timeout)
	if err != nil {
		return "", err
	}
	if !ready {
		return "", ErrTimeout
	}

	ed := &editor{out: c.out, echo: echo}
	var b [1]byte
	for {
		// Later keystrokes wait without a deadline but still honour ctx
		if ok, err := c.wait(ctx, 0); err != nil {
			return "", err
		} else if !ok {
			continue
		}

		n, err := c.in.Read(b[:])
		if err != nil {
			return "", err
		}
		if n == 0 {
			continue
		}

		done, err := ed.feed(b[0])
		if err != nil {
			return "", err
		}
		if done {
			return ed.String(), nil
		}
	}
}

// wait blocks until stdin is readable, the timeout passes or ctx is done
func (c *Console) wait(ctx context.Context, timeout time.Duration) (bool, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		slice := pollInterval
		if !deadline.IsZero() {
			left := time.Until(deadline)
			if left <= 0 {
				return false, nil
			}
			if left < slice {
				slice = left
			}
		}

		ready, err := waitReadable(c.fd, slice)
		if err != nil {
			return false, err
		}
		if ready {
			return true, nil
		}
	}
}

// ClearScreen erases the terminal and moves the cursor home
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[2J\033[H")
}

func trimEOL(s string) string {
	return strings.TrimRight(s, "\r\n")
}
