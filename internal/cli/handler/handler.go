// Package handler provides command execution abstraction to reduce boilerplate
package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thenoetrevino/coffeehub/internal/cli"
)

// Handler defines the interface for command execution
type Handler interface {
	// Execute runs the command against an opened CLI
	Execute(ctx context.Context, c *cli.CLI, args *Arguments) (any, error)
}

// Func adapts a function to Handler.
type Func func(ctx context.Context, c *cli.CLI, args *Arguments) (any, error)

func (f Func) Execute(ctx context.Context, c *cli.CLI, args *Arguments) (any, error) {
	return f(ctx, c, args)
}

// Arguments captures parsed CLI arguments and flags
type Arguments struct {
	Flags map[string]any
	Args  []string
	cmd   *cobra.Command
}

// GetCmd returns the cobra command for access to flag parsing utilities
func (a *Arguments) GetCmd() *cobra.Command {
	return a.cmd
}

// Opener creates the CLI a handler runs against.
type Opener func(ctx context.Context) (*cli.CLI, error)

// Connected opens the CLI and runs the full connect flow.
func Connected(ctx context.Context) (*cli.CLI, error) { return cli.Open(ctx) }

// Offline opens the CLI without touching any backend.
func Offline(ctx context.Context) (*cli.CLI, error) { return cli.NewCLI(ctx) }

// Command wraps common command execution logic and returns a cobra RunE.
// Errors are written through the formatter and returned as an ExitError
// so main can pick the exit code.
func Command(h Handler, open Opener) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		formatter := FormatterFor(cmd)

		c, err := open(ctx)
		if err != nil {
			return report(formatter, err)
		}
		defer func() {
			if err := c.Close(); err != nil {
				slog.Warn("error closing CLI", "error", err)
			}
		}()

		arguments := &Arguments{
			Flags: parseFlagsToMap(cmd),
			Args:  args,
			cmd:   cmd,
		}

		result, err := h.Execute(ctx, c, arguments)
		if err != nil {
			return report(formatter, err)
		}

		return formatter.Success(result)
	}
}

// FormatterFor builds the formatter from the --json/--quiet flags.
func FormatterFor(cmd *cobra.Command) *cli.OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &cli.OutputFormatter{
		JSON:   jsonOutput,
		Quiet:  quietMode,
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
	}
}

// AddOutputFlags registers --json and --quiet.
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// ExitError carries an already reported error and its exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func report(f *cli.OutputFormatter, err error) error {
	slog.Debug("command failed", "error", err)
	if fmtErr := f.Fail(err); fmtErr != nil {
		slog.Warn("error formatting error message", "error", fmtErr)
	}
	return &ExitError{Code: cli.ExitCode(err), Err: err}
}

// parseFlagsToMap converts cobra command flags to a map
func parseFlagsToMap(cmd *cobra.Command) map[string]any {
	flags := make(map[string]any)

	// Only flags that were explicitly set
	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Value.Type() {
		case "string":
			if v, err := cmd.Flags().GetString(f.Name); err == nil {
				flags[f.Name] = v
			}
		case "int":
			if v, err := cmd.Flags().GetInt(f.Name); err == nil {
				flags[f.Name] = v
			}
		case "int64":
			if v, err := cmd.Flags().GetInt64(f.Name); err == nil {
				flags[f.Name] = v
			}
		case "bool":
			if v, err := cmd.Flags().GetBool(f.Name); err == nil {
				flags[f.Name] = v
			}
		case "stringSlice":
			if v, err := cmd.Flags().GetStringSlice(f.Name); err == nil {
				flags[f.Name] = v
			}
		default:
			slog.Debug("unsupported flag type", "flag", f.Name, "type", f.Value.Type())
		}
	})

	return flags
}

// Has reports whether the flag was set on the command line.
func (a *Arguments) Has(name string) bool {
	_, ok := a.Flags[name]
	return ok
}

// MustGetString retrieves a required string flag.
func (a *Arguments) MustGetString(name string) (string, error) {
	v, ok := a.Flags[name].(string)
	if !ok {
		return "", &cli.UsageError{Msg: fmt.Sprintf("--%s is required", name)}
	}
	return v, nil
}

// GetString retrieves a string flag with default
func (a *Arguments) GetString(name string, defaultVal string) string {
	if v, ok := a.Flags[name].(string); ok {
		return v
	}
	return defaultVal
}

// GetInt retrieves an int flag with default
func (a *Arguments) GetInt(name string, defaultVal int) int {
	if v, ok := a.Flags[name].(int); ok {
		return v
	}
	return defaultVal
}

// GetInt64 retrieves an int64 flag with default
func (a *Arguments) GetInt64(name string, defaultVal int64) int64 {
	if v, ok := a.Flags[name].(int64); ok {
		return v
	}
	return defaultVal
}

// GetBool retrieves a bool flag
func (a *Arguments) GetBool(name string) bool {
	v, _ := a.Flags[name].(bool)
	return v
}

// GetStringSlice retrieves a string slice flag with default
func (a *Arguments) GetStringSlice(name string, defaultVal []string) []string {
	if v, ok := a.Flags[name].([]string); ok {
		return v
	}
	return defaultVal
}
