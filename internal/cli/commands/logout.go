package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eniola256/Blog/internal/cli/auth"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			auth.Default.Clear()
			fmt.Println("Logged out.")
			return nil
		},
	}
}
