package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/pigeon-go/internal/config"
	"github.com/pfrederiksen/pigeon-go/internal/dryrun"
	"github.com/pfrederiksen/pigeon-go/internal/logger"
	"github.com/pfrederiksen/pigeon-go/pigeon"
)

const (
	ExitSuccess     = 0
	ExitError       = 1
	ExitNotVerified = 2
)

// ErrNotVerified is returned by "otp verify" when the code is rejected.
var ErrNotVerified = errors.New("OTP not verified")

// app holds the global flags shared by every command.
type app struct {
	format  string
	dryRun  bool
	verbose bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "pigeon",
		Short: "Send email, SMS and push notifications through Pigeon",
		Long: `A CLI for the Pigeon notification API.
Sends mail, text and push notifications, and issues and verifies OTPs.

Configuration is read from the environment:
  PIGEON_TOKEN    API token (required)
  PIGEON_HOST     API base URL (default ` + pigeon.DefaultHost + `)
  PIGEON_TIMEOUT  request timeout (default 30s)
  LOG_LEVEL       debug, info, warn or error (default info)
  LOG_FORMAT      text or json (default text)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			format := OutputFormat(strings.ToLower(a.format))
			if format != FormatText && format != FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", a.format)
			}
			a.format = string(format)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.format, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&a.dryRun, "dry-run", false, "Print requests without sending them")
	cmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Enable debug logging and full response output")

	cmd.AddCommand(
		a.newMailCmd(),
		a.newTextCmd(),
		a.newNotifyCmd(),
		a.newOTPCmd(),
	)

	return cmd
}

// newClient builds a pigeon client from the environment.
func (a *app) newClient(cmd *cobra.Command) (*pigeon.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if a.verbose {
		level = string(logger.LevelDebug)
	}
	log, err := logger.New(logger.Options{Level: level, Format: cfg.LogFormat}, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	opts := []pigeon.Option{
		pigeon.WithTimeout(cfg.Timeout),
		pigeon.WithLogger(log),
	}
	if a.dryRun {
		opts = append(opts, pigeon.WithTransport(dryrun.New(cmd.OutOrStdout(), cfg.Host)))
	}

	c, err := pigeon.NewClientFromConfig(cfg.Client(), opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing client: %w", err)
	}

	log.Debug().Str("host", c.Host()).Bool("dry_run", a.dryRun).Msg("pigeon client ready")
	return c, nil
}

// sendFunc performs one send operation.
type sendFunc func(ctx context.Context, c *pigeon.Client) (pigeon.Result, error)

// runSend executes send and writes its response.
func (a *app) runSend(cmd *cobra.Command, send sendFunc) error {
	c, err := a.newClient(cmd)
	if err != nil {
		return err
	}

	res, err := send(cmd.Context(), c)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.CommandPath(), err)
	}

	return WriteOutput(cmd.OutOrStdout(), NewOutputResult(cmd.CommandPath(), res), OutputFormat(a.format), a.verbose)
}

// run executes the CLI with args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNotVerified):
		return ExitNotVerified
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
