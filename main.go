package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ngenohkevin/smdialog/config"
	"github.com/ngenohkevin/smdialog/internal/dialog"
	"github.com/ngenohkevin/smdialog/internal/smcl"
	"github.com/ngenohkevin/smdialog/internal/terminal"
)

// Set via -ldflags at build time
var version = "dev"

// exitStatus carries the process exit code out of RunE once the reason was printed
type exitStatus int

func (e exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

type options struct {
	noAutorefresh bool
	interval      time.Duration
	logLevel      string
	showVersion   bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		var status exitStatus
		if errors.As(err, &status) {
			os.Exit(int(status))
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "smdialog [connections.json]",
		Short: "Interactive dialog for the Automic ServiceManager client",
		Long: `smdialog lists the processes of a ServiceManager and lets you start, stop,
restart and reconfigure them through the ucybsmcl command line client.

Without a configuration file the connection parameters are prompted for,
falling back to AUTOMIC_SMCL, AUTOMIC_SMPORT and AUTOMIC_PHRASE.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.noAutorefresh, "no-autorefresh", false, "wait for input instead of redrawing periodically")
	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "autorefresh interval (default from AUTOMIC_REFRESH_SECONDS or 10s)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default from LOG_LEVEL)")
	cmd.Flags().BoolVar(&opts.showVersion, "show-version", false, "show the ucybsmcl version in the header")

	return cmd
}

func run(parent context.Context, opts *options, args []string) error {
	if parent == nil {
		parent = context.Background()
	}

	settings, err := config.Load()
	if err != nil {
		return fail(newLogger(config.LoadWithDefaults().LogLevel), err)
	}
	applyFlags(settings, opts)

	logger := newLogger(settings.LogLevel)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	// A second interrupt kills the process even if a read cannot be cancelled
	go func() {
		<-ctx.Done()
		stop()
	}()

	console := terminal.NewConsole(os.Stdin, os.Stdout)
	prompter := dialog.NewPrompter(ctx, console, os.Stdout)

	var conn *config.Connection
	if len(args) == 1 {
		conn, err = config.FromFile(args[0], prompter)
	} else {
		conn, err = config.FromPrompt(prompter)
	}
	if err != nil {
		return finish(logger, err)
	}
	if err := conn.Validate(); err != nil {
		return fail(logger, err)
	}

	client := smcl.New(smcl.Connection{
		Path:        conn.SmgrclPath,
		Addr:        conn.Addr(),
		Phrase:      conn.Phrase,
		Password:    conn.Password,
		Certificate: conn.Certificate,
		Key:         conn.Key,
		Chain:       conn.Chain,
	}, smcl.WithLogger(logger))

	header := dialog.Header{Host: conn.Addr(), Phrase: conn.Phrase}
	if opts.showVersion {
		if v, err := client.Version(ctx); err != nil {
			logger.Warn("could not determine client version", "err", err)
		} else {
			header.Version = v
		}
	}

	refresh := settings.RefreshInterval
	if !settings.Autorefresh {
		refresh = 0
	} else if !console.SupportsTimeout() {
		logger.Warn("autorefresh is not supported on this platform")
		refresh = 0
	}

	logger.Info("starting dialog", "connection", conn.Name, "addr", conn.Addr(), "autorefresh", refresh)

	d := dialog.New(client, console, os.Stdout,
		dialog.WithAutorefresh(refresh),
		dialog.WithSettleDelay(settings.SettleDelay),
		dialog.WithHeader(header),
		dialog.WithLogger(logger),
	)

	return finish(logger, d.Run(ctx))
}

func applyFlags(s *config.Settings, opts *options) {
	if opts.noAutorefresh {
		s.Autorefresh = false
	}
	if opts.interval > 0 {
		s.RefreshInterval = opts.interval
	}
	if opts.logLevel != "" {
		s.LogLevel = opts.logLevel
	}
}

func newLogger(level string) *log.Logger {
	return newLoggerTo(os.Stderr, level)
}

func newLoggerTo(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "smdialog",
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", level)
		lvl = log.WarnLevel
	}
	logger.SetLevel(lvl)

	return logger
}

// finish maps the outcome of the dialog onto an exit status
func finish(logger *log.Logger, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, terminal.ErrInterrupted),
		errors.Is(err, io.EOF),
		errors.Is(err, context.Canceled):
		fmt.Println()
		fmt.Println("Bye!")
		return nil
	case errors.Is(err, smcl.ErrToolNotFound):
		fmt.Println("Wrong ucybsmcl path provided")
		return exitStatus(1)
	}

	var exitErr *smcl.ExitError
	if errors.As(err, &exitErr) {
		fmt.Println("Command failed.")
		if out := exitErr.Output(); out != "" {
			fmt.Println(out)
		}
		return exitStatus(smcl.ExitCode(err))
	}

	return fail(logger, err)
}

// fail reports a fatal error before or outside the dialog
func fail(logger *log.Logger, err error) error {
	logger.Error("smdialog failed", "err", err)
	return exitStatus(1)
}
