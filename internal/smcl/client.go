package smcl

import (
	"context"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ngenohkevin/smdialog/internal/process"
)

var versionPattern = regexp.MustCompile(`([0-9][0-9.-]+)\+?`)

// Client drives the service manager command line client for one connection
type Client struct {
	conn   Connection
	runner Runner
	logger *log.Logger
}

// Option configures a Client
type Option func(*Client)

// WithRunner replaces the process runner, mainly for tests
func WithRunner(r Runner) Option {
	return func(c *Client) {
		c.runner = r
	}
}

// WithLogger sets the logger used for invocation tracing
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a client for the given connection
func New(conn Connection, opts ...Option) *Client {
	c := &Client{
		conn:   conn,
		runner: ExecRunner{},
		logger: log.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ListProcesses runs GET_PROCESS_LIST and parses the listing
func (c *Client) ListProcesses(ctx context.Context) (*process.Table, error) {
	res, err := c.run(ctx, NewArgs(c.conn).Command(CmdGetProcessList))
	if err != nil {
		return nil, err
	}
	return process.Parse(res.Stdout), nil
}

// Start runs START_PROCESS for name
func (c *Client) Start(ctx context.Context, name string) error {
	_, err := c.run(ctx, NewArgs(c.conn).Command(CmdStartProcess).Target(name))
	return err
}

// Stop runs STOP_PROCESS for name, with -m when mode is not StopNormal
func (c *Client) Stop(ctx context.Context, name string, mode StopMode) error {
	_, err := c.run(ctx, NewArgs(c.conn).Command(CmdStopProcess).Target(name).Mode(mode))
	return err
}

// SetData runs SET_DATA for name, writing value into field
func (c *Client) SetData(ctx context.Context, name string, field DataField, value string) error {
	_, err := c.run(ctx, NewArgs(c.conn).Command(CmdSetData).Target(name).Data(field, value))
	return err
}

// Version asks the client binary for its version string.
// It returns an empty string when the output carries no version.
func (c *Client) Version(ctx context.Context) (string, error) {
	res, err := c.runner.Run(ctx, c.conn.Path, []string{"-v"})
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", &ExitError{Command: "-v", Code: res.ExitCode, Stdout: res.Stdout, Stderr: res.Stderr}
	}

	out := strings.TrimSpace(res.Stdout)
	if m := versionPattern.FindStringSubmatch(out); m != nil {
		return m[1], nil
	}
	if fields := strings.Fields(out); len(fields) > 0 {
		return fields[0], nil
	}
	return "", nil
}

func (c *Client) run(ctx context.Context, a *Args) (*Result, error) {
	c.logger.Debug("invoking service manager client", "path", c.conn.Path, "args", a.Redacted())

	res, err := c.runner.Run(ctx, c.conn.Path, a.Build())
	if err != nil {
		c.logger.Error("service manager client did not run", "path", c.conn.Path, "err", err)
		return nil, err
	}

	c.logger.Debug("service manager client finished", "command", a.command, "exit_code", res.ExitCode, "duration", res.Duration)

	if res.ExitCode != 0 {
		return nil, &ExitError{
			Command: a.command,
			Code:    res.ExitCode,
			Stdout:  res.Stdout,
			Stderr:  res.Stderr,
		}
	}
	return res, nil
}
