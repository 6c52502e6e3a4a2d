package commands

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/eniola256/Blog/internal/apiclient"
	"github.com/eniola256/Blog/internal/cli/auth"
	"github.com/eniola256/Blog/internal/session"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the blog backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			return runLogin(cmd.Context(), client, auth.Default, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set BLOG_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set BLOG_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(ctx context.Context, client *apiclient.Client, store session.TokenStore, email, password string) error {
	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("BLOG_EMAIL")
	}
	if password == "" {
		password = os.Getenv("BLOG_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or BLOG_EMAIL env var)")
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		// Check if stdin is a terminal (not piped)
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println() // New line after password input
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or BLOG_PASSWORD env var)")
		}
	}

	fmt.Printf("Logging in to %s...\n", client.BaseURL())

	cred, err := client.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	if err := store.Write(cred); err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", cred.User.Name, cred.User.Role)
	return nil
}
