// Package dialog runs the interactive menu loop around the service manager client.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ngenohkevin/smdialog/internal/command"
	"github.com/ngenohkevin/smdialog/internal/process"
	"github.com/ngenohkevin/smdialog/internal/terminal"
)

// Dialog is the list / choose / act loop
type Dialog struct {
	ctl        Controller
	in         terminal.LineReader
	out        io.Writer
	dispatcher *Dispatcher
	styles     styles
	header     Header
	refresh    time.Duration
	settle     time.Duration
	now        func() time.Time
	logger     *log.Logger
}

// Option configures a Dialog
type Option func(*Dialog)

// WithAutorefresh redraws the table after d without input; 0 disables it
func WithAutorefresh(d time.Duration) Option {
	return func(dl *Dialog) {
		dl.refresh = d
	}
}

// WithSettleDelay sets the pause between stop and start on restart
func WithSettleDelay(d time.Duration) Option {
	return func(dl *Dialog) {
		dl.settle = d
	}
}

// WithHeader sets the connection summary shown above the table
func WithHeader(h Header) Option {
	return func(dl *Dialog) {
		dl.header = h
	}
}

// WithClock replaces time.Now for the header clock
func WithClock(now func() time.Time) Option {
	return func(dl *Dialog) {
		dl.now = now
	}
}

// WithLogger sets the logger for dispatch tracing
func WithLogger(l *log.Logger) Option {
	return func(dl *Dialog) {
		dl.logger = l
	}
}

// New creates a dialog reading from in and drawing to out
func New(ctl Controller, in terminal.LineReader, out io.Writer, opts ...Option) *Dialog {
	d := &Dialog{
		ctl:     ctl,
		in:      in,
		out:     out,
		styles:  newStyles(out),
		refresh: 10 * time.Second,
		settle:  2 * time.Second,
		now:     time.Now,
		logger:  log.Default(),
	}

	for _, opt := range opts {
		opt(d)
	}

	d.dispatcher = NewDispatcher(ctl, out, d.settle)
	return d
}

// Run loops until the user quits. Any client failure ends the loop with that error;
// end of input and interrupts are returned as io.EOF and terminal.ErrInterrupted.
func (d *Dialog) Run(ctx context.Context) error {
	for {
		quit, err := d.step(ctx)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// step performs one refresh / prompt / act cycle
func (d *Dialog) step(ctx context.Context) (bool, error) {
	table, err := d.ctl.ListProcesses(ctx)
	if err != nil {
		return false, err
	}

	renderTable(d.out, d.styles, d.header, d.now(), table)
	renderMenu(d.out)

	fmt.Fprint(d.out, "Action: ")
	line, err := d.in.ReadLine(ctx, d.refresh)
	if errors.Is(err, terminal.ErrTimeout) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	cmd, err := d.readCommand(ctx, line)
	if err != nil {
		return false, err
	}

	switch cmd.Action {
	case command.ActionQuit:
		return true, nil
	case command.ActionRefresh:
		return false, nil
	}

	targets, err := d.resolveTargets(ctx, cmd, table)
	if err != nil || len(targets) == 0 {
		return false, err
	}

	var data string
	switch cmd.Action {
	case command.ActionModifyCommand:
		data, err = d.ask(ctx, "Provide new command: ")
	case command.ActionModifyPath:
		data, err = d.ask(ctx, "Provide new path: ")
	}
	if err != nil {
		return false, err
	}

	names := make([]string, 0, len(targets))
	fmt.Fprintln(d.out, "\nSelected processes:")
	for _, i := range targets {
		rec, _ := table.Get(i)
		names = append(names, rec.Name)
		fmt.Fprintf(d.out, "- %s\n", rec.Name)
	}

	ok, err := d.confirm(ctx, fmt.Sprintf("\nExecute %s on these processes? Y/N [Y] ", cmd.Action))
	if err != nil || !ok {
		return false, err
	}

	d.logger.Debug("dispatching", "action", cmd.Action.String(), "processes", names)
	return false, d.dispatcher.DispatchAll(ctx, cmd.Action, names, data)
}

// readCommand re-prompts until line parses
func (d *Dialog) readCommand(ctx context.Context, line string) (command.Command, error) {
	for {
		cmd, err := command.Parse(line)
		switch {
		case errors.Is(err, command.ErrInvalidAction):
			line, err = d.ask(ctx, "Invalid action, try again: ")
		case errors.Is(err, command.ErrInvalidNumbers):
			line, err = d.ask(ctx, "Invalid numbers, try again: ")
		default:
			if cmd.SpecDropped {
				fmt.Fprintln(d.out, cmd.Notice())
			}
			return cmd, nil
		}
		if err != nil {
			return command.Command{}, err
		}
	}
}

// resolveTargets returns the table indices the command applies to.
// An empty result means the action is abandoned; the reason has been printed.
func (d *Dialog) resolveTargets(ctx context.Context, cmd command.Command, table *process.Table) ([]int, error) {
	if table.Len() == 0 {
		fmt.Fprintln(d.out, "No processes available")
		return nil, nil
	}

	if cmd.Action.SingleTarget() {
		return d.resolveSingle(ctx, table)
	}

	spec := cmd.Spec
	if spec == "" {
		var err error
		spec, err = d.ask(ctx, "Which process number(s)? (e.g. 1,2,3 or 1-5): ")
		if err != nil {
			return nil, err
		}
	}

	targets := command.Expand(spec, table.Len())
	if len(targets) == 0 {
		fmt.Fprintln(d.out, "No valid process numbers provided")
	}
	return targets, nil
}

func (d *Dialog) resolveSingle(ctx context.Context, table *process.Table) ([]int, error) {
	answer, err := d.ask(ctx, "Which process number? ")
	if err != nil {
		return nil, err
	}

	for {
		if n, err := strconv.Atoi(strings.TrimSpace(answer)); err == nil && table.Valid(n) {
			return []int{n}, nil
		}

		answer, err = d.ask(ctx, fmt.Sprintf("Invalid number (1-%d), try again: ", table.Len()))
		if err != nil {
			return nil, err
		}
	}
}

// confirm treats an empty answer as yes
func (d *Dialog) confirm(ctx context.Context, question string) (bool, error) {
	answer, err := d.ask(ctx, question)
	if err != nil {
		return false, err
	}
	answer = strings.TrimSpace(answer)
	return answer == "" || strings.EqualFold(answer, "Y"), nil
}

func (d *Dialog) ask(ctx context.Context, question string) (string, error) {
	fmt.Fprint(d.out, question)
	return d.in.ReadLine(ctx, 0)
}
