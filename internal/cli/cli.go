// Package cli parses command-line arguments into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/bootgridgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app
// config, a boolean indicating if the program should exit cleanly, or an
// ExitError. The EnvFile return is the optional dotenv file to load before
// the boot sequence starts.
func Parse(args []string, output io.Writer) (*app.Config, string, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("bootgridgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
BootGridGo - a declarative container build-and-boot pipeline.

Usage:
  bootgridgo [options] [DEPLOYFILE]

Arguments:
  DEPLOYFILE
    Path to the .hcl deployfile describing the boot sequence.

Options:
`)
		flagSet.PrintDefaults()
	}

	deployFlag := flagSet.String("deployfile", "", "Path to the deployfile.")
	fFlag := flagSet.String("f", "", "Path to the deployfile (shorthand).")
	envFileFlag := flagSet.String("env-file", "", "Optional dotenv file loaded before the boot sequence.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, "", true, nil
		}
		return nil, "", false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *deployFlag != "" {
		path = *deployFlag
	} else if *fFlag != "" {
		path = *fFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Deployfile path determined.", "path", path)

	if path == "" {
		slog.Debug("No deployfile provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, "", true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, "", false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, "", false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		DeployfilePath: path,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
	})
	if err != nil {
		return nil, "", false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, *envFileFlag, false, nil
}
