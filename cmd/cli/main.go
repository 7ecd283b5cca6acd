package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/vk/bootgridgo/internal/app"
	"github.com/vk/bootgridgo/internal/cli"
	"github.com/vk/bootgridgo/internal/hclcfg"
)

// main is the entrypoint for the bootgridgo application. Its exit code is
// the container's exit code.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, envFile, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The launched application reads its credentials from the environment.
	// An explicitly named env file must exist; the conventional .env is
	// loaded opportunistically.
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	// The app panics on critical startup errors (unreadable deployfile,
	// config/code mismatch), so we recover here to provide a clean exit.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	loader := hclcfg.NewLoader()
	bootApp := app.NewApp(outW, appConfig, loader)

	return bootApp.Run(context.Background())
}
