package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/srozzo/go-termsys/signals"
	"golang.org/x/term"
)

type watchFlags struct {
	Signals []string `mapstructure:"signal"`
	Ignore  []string `mapstructure:"ignore"`
	Count   int      `mapstructure:"count"`
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print terminal-related signals as they arrive",
		Long: `Register handlers for the given signals and print each delivery.

Stops on INT or TERM, or after --count deliveries. Every disposition that was
replaced is restored before exit, most recent first.`,
		Example: `  # Watch resizes and job-control continue
  $ termprobe watch --signal WINCH --signal CONT --signal INT

  # Ignore terminal stop while watching
  $ termprobe watch --ignore TSTP`,
		RunE: func(c *cobra.Command, args []string) error {
			var f watchFlags
			if err := unmarshalFlags(c, &f); err != nil {
				return err
			}
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			defer logger.Close()

			reg := signals.NewRegistry(signals.WithLogger(logger.Logger))
			return watch(c.Context(), reg, c.OutOrStdout(), f, logger.Logger)
		},
	}

	cmd.Flags().StringSlice("signal", []string{"WINCH", "CONT", "INT"}, "signal to watch (repeatable)")
	cmd.Flags().StringSlice("ignore", nil, "signal to ignore while watching (repeatable)")
	cmd.Flags().Int("count", 0, "exit after this many deliveries (0 means no limit)")

	return cmd
}

type registration struct {
	name   string
	handle signals.Handle
}

func watch(ctx context.Context, reg *signals.Registry, out io.Writer, f watchFlags, logger *slog.Logger) error {
	if !reg.Supported() {
		logger.Warn("no signal facility on this platform, nothing to watch")
		return nil
	}

	var stack []registration
	defer func() {
		for i := len(stack) - 1; i >= 0; i-- {
			reg.Unregister(stack[i].name, stack[i].handle)
			logger.Debug("restored", "signal", stack[i].name)
		}
	}()

	for _, name := range f.Ignore {
		h := reg.RegisterIgnore(name)
		if h.IsZero() {
			logger.Warn("cannot ignore signal on this platform", "signal", name)
			continue
		}
		stack = append(stack, registration{name, h})
	}

	events := make(chan string, 16)
	var watching []string
	for _, name := range f.Signals {
		h := reg.Register(name, func() {
			select {
			case events <- name:
			default:
			}
		})
		if h.IsZero() {
			logger.Warn("cannot watch signal on this platform", "signal", name)
			continue
		}
		stack = append(stack, registration{name, h})
		watching = append(watching, name)
	}
	if len(watching) == 0 {
		return errors.New("none of the requested signals can be watched here")
	}

	fmt.Fprintf(out, "watching %s\n", strings.Join(watching, ", "))

	for seen := 0; ; {
		select {
		case <-ctx.Done():
			return nil
		case name := <-events:
			seen++
			fmt.Fprintln(out, describe(name))
			if isStop(name) || (f.Count > 0 && seen >= f.Count) {
				return nil
			}
		}
	}
}

func describe(name string) string {
	if strings.TrimPrefix(name, "SIG") != "WINCH" {
		return name
	}
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return name
	}
	return fmt.Sprintf("%s %dx%d", name, cols, rows)
}

func isStop(name string) bool {
	switch strings.TrimPrefix(name, "SIG") {
	case "INT", "TERM":
		return true
	}
	return false
}
