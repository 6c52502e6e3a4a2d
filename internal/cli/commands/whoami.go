package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eniola256/Blog/internal/apiclient"
	"github.com/eniola256/Blog/internal/cli/auth"
	"github.com/eniola256/Blog/internal/session"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			return runWhoami(cmd.Context(), client, auth.Default)
		},
	}
}

func runWhoami(ctx context.Context, client *apiclient.Client, store session.TokenStore) error {
	if _, err := currentCredential(store); err != nil {
		return err
	}

	// Ask the backend rather than trusting the stored record; an expired
	// token should surface here, not on the next mutating command.
	user, err := client.CurrentUser(ctx, tokenSource(store))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", user.Name)
	fmt.Fprintf(w, "Email:\t%s\n", user.Email)
	fmt.Fprintf(w, "Role:\t%s\n", user.Role)
	return w.Flush()
}
