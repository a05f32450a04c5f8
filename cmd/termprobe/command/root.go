package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/srozzo/go-termsys/internal/logging"
)

func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "termprobe",
		Short: "Inspect terminal platform detection and signal handling",
		Long:  "termprobe reports which terminal helper programs this host resolves and lets you watch terminal-related signals as a terminal library would see them.",
		Example: `  # Show detected platform and helper commands
  $ termprobe info

  # Print every window resize until interrupted
  $ termprobe watch --signal WINCH --signal INT`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("debug", os.Getenv("DEBUG") != "", "debug logging")
	cmd.PersistentFlags().String("log-file", "", "append JSON logs to this file")

	cmd.AddCommand(infoCmd())
	cmd.AddCommand(watchCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

type logFlags struct {
	Debug   bool   `mapstructure:"debug"`
	LogFile string `mapstructure:"log-file"`
}

func newLogger(c *cobra.Command) (*logging.Logger, error) {
	var f logFlags
	if err := unmarshalFlags(c, &f); err != nil {
		return nil, err
	}

	opts := []logging.Option{logging.Console(c.ErrOrStderr())}
	if f.Debug {
		opts = append(opts, logging.Debug())
	}
	if f.LogFile != "" {
		opts = append(opts, logging.File(f.LogFile))
	}
	logger, err := logging.New(opts...)
	if err != nil {
		return nil, err
	}
	return logger.With("cmd", c.Name()), nil
}

// unmarshalFlags decodes the command's flags into opts. Every flag can also
// be set through a TERMPROBE_ environment variable.
func unmarshalFlags(cmd *cobra.Command, opts any) error {
	v := viper.New()

	var bindErr error
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if flag.Name == "help" || bindErr != nil {
			return
		}
		if err := v.BindPFlag(flag.Name, flag); err != nil {
			bindErr = fmt.Errorf("error binding flag '%s': %w", flag.Name, err)
		}
	})
	if bindErr != nil {
		return bindErr
	}

	v.SetEnvPrefix("TERMPROBE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v.Unmarshal(opts)
}
