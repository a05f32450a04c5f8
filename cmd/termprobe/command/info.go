package command

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/srozzo/go-termsys/platform"
	"github.com/srozzo/go-termsys/signals"
)

type infoFlags struct {
	JSON bool `mapstructure:"json"`
}

type infoReport struct {
	Platform         platform.Info `json:"platform"`
	SignalsSupported bool          `json:"signalsSupported"`
}

func infoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show detected platform and helper commands",
		RunE: func(c *cobra.Command, args []string) error {
			var f infoFlags
			if err := unmarshalFlags(c, &f); err != nil {
				return err
			}
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			defer logger.Close()

			report := infoReport{
				Platform:         platform.Detect(),
				SignalsSupported: signals.NewRegistry(signals.WithLogger(logger.Logger)).Supported(),
			}
			logger.Debug("platform detected", "info", report.Platform.String())
			return writeInfo(c.OutOrStdout(), report, f.JSON)
		},
	}

	cmd.Flags().Bool("json", false, "print as JSON")

	return cmd
}

func writeInfo(w io.Writer, r infoReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	flag := r.Platform.STTYFileFlag
	if flag == "" {
		flag = "n/a"
	}
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Property", "Value"})
	t.AppendRows([]table.Row{
		{"Windows", r.Platform.IsWindows},
		{"Cygwin-like", r.Platform.IsCygwin},
		{"Mac", r.Platform.IsMac},
		{"tty", r.Platform.TTYCommand},
		{"stty", r.Platform.STTYCommand},
		{"stty device flag", flag},
		{"infocmp", r.Platform.InfocmpCommand},
		{"Signals", r.SignalsSupported},
	})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
