package command

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/srozzo/go-termsys/internal/version"
)

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		RunE: func(c *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(c.OutOrStdout(), "termprobe version v%s\n", version.Current())
			return err
		},
	}

	return cmd
}
