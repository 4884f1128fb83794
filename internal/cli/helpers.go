package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/module"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// createLogger configures the application logger.
// An empty level disables logging.
func createLogger(level string) (*slog.Logger, error) {
	if level == "" {
		return logging.NewNop(), nil
	}
	l, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(l), nil
}

func createDebugHooks(logger *slog.Logger) module.Hooks {
	return module.Hooks{
		OnMerge: func(e *module.MergeEvent) {
			if e.Err != nil {
				logger.Debug("Merge rejected", "type", e.Type, "err", e.Err)
			}
		},
	}
}

func newEngine(logLevel string) (*arbor.Engine, error) {
	logger, err := createLogger(logLevel)
	if err != nil {
		return nil, err
	}
	return arbor.New(
		arbor.WithLogger(logger),
		arbor.WithHooks(createDebugHooks(logger)),
	)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorProfile picks the colour profile for w.
func colorProfile(w io.Writer, plain bool) termenv.Profile {
	if plain || !isTerminal(w) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// printMarkdown renders markdown with glamour on terminals and writes it
// verbatim elsewhere.
func printMarkdown(w io.Writer, markdown string, plain bool) error {
	if plain || !isTerminal(w) {
		_, err := io.WriteString(w, markdown)
		return err
	}
	out, err := tui.NewRenderer()(markdown)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
