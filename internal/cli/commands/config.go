package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eniola256/Blog/internal/cli/userconfig"
)

// NewConfigCmd creates the config command group
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change blogctl settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get-url",
		Short: "Print the backend URL in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := userconfig.Load()
			if err != nil {
				return err
			}
			fmt.Println(cfg.BaseURL())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-url <url>",
		Short: "Point blogctl at a different backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := userconfig.SetAPIBaseURL(args[0]); err != nil {
				return err
			}
			fmt.Printf("Backend set to %s\n", args[0])
			return nil
		},
	})

	return cmd
}
