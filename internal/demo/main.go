package demo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/term"

	"github.com/tinyrange/glcube/internal/config"
	"github.com/tinyrange/glcube/internal/logging"
)

// Main runs cfg as a command and exits the process. name prefixes fatal
// messages.
func Main(name string, cfg config.Config) {
	// EGL contexts are bound to the creating thread.
	runtime.LockOSThread()

	if err := run(cfg); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Code != 0 {
				fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	logging.SetLogger(logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel), term.IsTerminal(int(os.Stderr.Fd()))))
	log := logging.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := Setup(cfg, DefaultPlatform())
	if err != nil {
		log.Error("setup failed", "variant", cfg.Variant, "error", err)
		return &ExitError{Code: ExitCode(err), Err: err}
	}
	defer app.Close()

	return app.Run(ctx)
}
