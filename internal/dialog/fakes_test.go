package dialog

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/ngenohkevin/smdialog/internal/process"
	"github.com/ngenohkevin/smdialog/internal/smcl"
	"github.com/ngenohkevin/smdialog/internal/terminal"
)

// timeoutLine makes scriptedInput report terminal.ErrTimeout
const timeoutLine = "\x00timeout"

type scriptedInput struct {
	lines    []string
	timeouts []time.Duration
}

func (s *scriptedInput) ReadLine(_ context.Context, timeout time.Duration) (string, error) {
	s.timeouts = append(s.timeouts, timeout)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	if line == timeoutLine {
		return "", terminal.ErrTimeout
	}
	return line, nil
}

func (s *scriptedInput) ReadSecret(ctx context.Context) (string, error) {
	return s.ReadLine(ctx, 0)
}

type call struct {
	Op    string
	Name  string
	Mode  smcl.StopMode
	Field smcl.DataField
	Value string
}

var errBoom = errors.New("boom")

type fakeController struct {
	tables  []*process.Table
	lists   int
	calls   []call
	failOn  string
	listErr error
}

func (f *fakeController) ListProcesses(context.Context) (*process.Table, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.tables) == 0 {
		return process.NewTable(), nil
	}
	t := f.tables[0]
	if len(f.tables) > 1 {
		f.tables = f.tables[1:]
	}
	return t, nil
}

func (f *fakeController) record(c call) error {
	f.calls = append(f.calls, c)
	if f.failOn != "" && f.failOn == c.Name {
		return errBoom
	}
	return nil
}

func (f *fakeController) Start(_ context.Context, name string) error {
	return f.record(call{Op: "start", Name: name})
}

func (f *fakeController) Stop(_ context.Context, name string, mode smcl.StopMode) error {
	return f.record(call{Op: "stop", Name: name, Mode: mode})
}

func (f *fakeController) SetData(_ context.Context, name string, field smcl.DataField, value string) error {
	return f.record(call{Op: "set", Name: name, Field: field, Value: value})
}

func threeProcesses() *process.Table {
	return process.Parse(`"CP1" "R" "4711" "2026-10-14 08:15:02"
"WP1" "R" "4712" "2026-10-14 08:15:04"
"JWP" "E"
`)
}
