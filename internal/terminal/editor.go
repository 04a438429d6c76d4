package terminal

import (
	"io"
	"unicode/utf8"
)

const (
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyBackspace = 0x08
	keyLF        = '\n'
	keyCR        = '\r'
	keyDelete    = 0x7f
)

// editor collects raw keystrokes into a line
type editor struct {
	out  io.Writer
	echo bool
	buf  []byte
}

// feed handles one input byte; done is set once the line is complete
func (e *editor) feed(b byte) (bool, error) {
	switch b {
	case keyCR, keyLF:
		e.write("\r\n")
		return true, nil
	case keyBackspace, keyDelete:
		if len(e.buf) > 0 {
			_, size := utf8.DecodeLastRune(e.buf)
			e.buf = e.buf[:len(e.buf)-size]
			if e.echo {
				e.write("\b \b")
			}
		}
		return false, nil
	case keyCtrlC:
		e.write("\r\n")
		return false, ErrInterrupted
	case keyCtrlD:
		if len(e.buf) == 0 {
			e.write("\r\n")
			return false, io.EOF
		}
		return false, nil
	}

	if b < 0x20 {
		return false, nil
	}

	e.buf = append(e.buf, b)
	if e.echo {
		_, _ = e.out.Write([]byte{b})
	}
	return false, nil
}

func (e *editor) write(s string) {
	if e.out != nil {
		_, _ = io.WriteString(e.out, s)
	}
}

// String returns the line typed so far
func (e *editor) String() string {
	return string(e.buf)
}
