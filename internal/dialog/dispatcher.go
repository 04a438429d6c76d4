package dialog

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ngenohkevin/smdialog/internal/command"
	"github.com/ngenohkevin/smdialog/internal/process"
	"github.com/ngenohkevin/smdialog/internal/smcl"
)

// Controller is the subset of the service manager client the dialog drives
type Controller interface {
	ListProcesses(ctx context.Context) (*process.Table, error)
	Start(ctx context.Context, name string) error
	Stop(ctx context.Context, name string, mode smcl.StopMode) error
	SetData(ctx context.Context, name string, field smcl.DataField, value string) error
}

// Dispatcher turns a validated action into client calls
type Dispatcher struct {
	ctl    Controller
	out    io.Writer
	settle time.Duration
}

// NewDispatcher creates a dispatcher that pauses settle between the halves of a restart
func NewDispatcher(ctl Controller, out io.Writer, settle time.Duration) *Dispatcher {
	return &Dispatcher{ctl: ctl, out: out, settle: settle}
}

// Dispatch performs action on the process called name.
// data is the new command or start path for MC and MP and ignored otherwise.
func (d *Dispatcher) Dispatch(ctx context.Context, action command.Action, name, data string) error {
	switch action {
	case command.ActionRestart:
		return d.restart(ctx, name)
	case command.ActionStart:
		return d.start(ctx, name)
	case command.ActionStop:
		return d.ctl.Stop(ctx, name, smcl.StopNormal)
	case command.ActionStopAbnormal:
		return d.ctl.Stop(ctx, name, smcl.StopAbnormal)
	case command.ActionStopShutdown:
		return d.ctl.Stop(ctx, name, smcl.StopShutdown)
	case command.ActionAutostartOn:
		return d.modify(ctx, name, smcl.FieldAutostart, "1")
	case command.ActionAutostartOff:
		return d.modify(ctx, name, smcl.FieldAutostart, "0")
	case command.ActionModifyCommand:
		return d.modify(ctx, name, smcl.FieldCommand, data)
	case command.ActionModifyPath:
		return d.modify(ctx, name, smcl.FieldStartPath, data)
	}
	return fmt.Errorf("action %s cannot be dispatched", action)
}

// DispatchAll applies action to every name in order and stops at the first failure.
// Processes handled before the failure are not rolled back.
func (d *Dispatcher) DispatchAll(ctx context.Context, action command.Action, names []string, data string) error {
	for _, name := range names {
		fmt.Fprintf(d.out, "Processing %s...\n", name)
		if err := d.Dispatch(ctx, action, name, data); err != nil {
			return fmt.Errorf("%s %s: %w", action.Label(), name, err)
		}
	}
	return nil
}

func (d *Dispatcher) start(ctx context.Context, name string) error {
	fmt.Fprintf(d.out, "Starting %s\n", name)
	return d.ctl.Start(ctx, name)
}

func (d *Dispatcher) restart(ctx context.Context, name string) error {
	if err := d.ctl.Stop(ctx, name, smcl.StopNormal); err != nil {
		return err
	}

	if d.settle > 0 {
		select {
		case <-time.After(d.settle):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return d.start(ctx, name)
}

func (d *Dispatcher) modify(ctx context.Context, name string, field smcl.DataField, value string) error {
	fmt.Fprintf(d.out, "Modifying %s\n", name)
	return d.ctl.SetData(ctx, name, field, value)
}
