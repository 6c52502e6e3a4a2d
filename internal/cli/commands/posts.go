package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/eniola256/Blog/internal/apiclient"
	"github.com/eniola256/Blog/internal/cli/auth"
	"github.com/eniola256/Blog/internal/roles"
	"github.com/eniola256/Blog/internal/session"
)

// NewPostsCmd creates the posts command group
func NewPostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Manage blog posts",
	}

	cmd.AddCommand(newPostsListCmd())
	cmd.AddCommand(newPostsDeleteCmd())
	cmd.AddCommand(newPostsPublishCmd())

	return cmd
}

func newPostsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List your posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			return runPostsList(cmd.Context(), client, auth.Default)
		},
	}
}

func runPostsList(ctx context.Context, client *apiclient.Client, store session.TokenStore) error {
	posts, err := fetchPosts(ctx, client, store)
	if err != nil {
		return err
	}

	if len(posts) == 0 {
		fmt.Println("No posts found.")
		fmt.Println("\nPublish one with: blogctl posts publish <file.md>")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tCREATED AT")
	fmt.Fprintln(w, "──\t─────\t──────\t──────────")

	for _, post := range posts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			post.ID,
			post.Title,
			post.Status,
			post.CreatedAt,
		)
	}

	return w.Flush()
}

// fetchPosts lists every post for admins and the caller's own posts for
// authors.
func fetchPosts(ctx context.Context, client *apiclient.Client, store session.TokenStore) ([]apiclient.Post, error) {
	cred, err := currentCredential(store)
	if err != nil {
		return nil, err
	}

	if cred.User.Role == roles.RoleAdmin {
		return client.AdminPosts(ctx, tokenSource(store))
	}
	return client.AuthorPosts(ctx, tokenSource(store))
}

func newPostsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm [post-id]",
		Aliases: []string{"delete"},
		Short:   "Delete a post",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			return runPostsDelete(cmd.Context(), client, auth.Default, id, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runPostsDelete(ctx context.Context, client *apiclient.Client, store session.TokenStore, id string, yes bool) error {
	if id == "" {
		posts, err := fetchPosts(ctx, client, store)
		if err != nil {
			return err
		}
		if len(posts) == 0 {
			return fmt.Errorf("no posts to delete")
		}

		prompt := promptui.Select{
			Label: "Select a post to delete",
			Items: postTitles(posts),
		}
		idx, _, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("selection cancelled: %w", err)
		}
		id = posts[idx].ID
	}

	if !yes {
		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("Delete post %s", id),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := client.DeletePost(ctx, tokenSource(store), id); err != nil {
		return err
	}

	fmt.Printf("Deleted post %s\n", id)
	return nil
}

func postTitles(posts []apiclient.Post) []string {
	titles := make([]string, 0, len(posts))
	for _, post := range posts {
		titles = append(titles, fmt.Sprintf("%s (%s)", post.Title, post.Status))
	}
	return titles
}
