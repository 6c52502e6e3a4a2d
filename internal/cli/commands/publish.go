package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eniola256/Blog/internal/apiclient"
	"github.com/eniola256/Blog/internal/cli/auth"
	"github.com/eniola256/Blog/internal/session"
)

// postFrontMatter is the YAML header of a publishable markdown file.
type postFrontMatter struct {
	Title    string   `yaml:"title"`
	Excerpt  string   `yaml:"excerpt"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
	Status   string   `yaml:"status"`
}

func newPostsPublishCmd() *cobra.Command {
	var draft bool

	cmd := &cobra.Command{
		Use:   "publish <file.md>",
		Short: "Create a post from a markdown file",
		Long: `Create a post from a markdown file with a YAML front matter block:

  ---
  title: My post
  excerpt: One-line teaser
  category: go
  tags: [web, tooling]
  ---

  Body in markdown follows the closing delimiter.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			return runPostsPublish(cmd.Context(), client, auth.Default, args[0], draft)
		},
	}

	cmd.Flags().BoolVar(&draft, "draft", false, "Create the post as a draft instead of publishing")

	return cmd
}

func runPostsPublish(ctx context.Context, client *apiclient.Client, store session.TokenStore, path string, draft bool) error {
	if _, err := currentCredential(store); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	input, err := parsePostFile(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if draft {
		input.Status = "draft"
	}

	post, err := client.CreatePost(ctx, tokenSource(store), input)
	if err != nil {
		return err
	}

	fmt.Printf("Created post %q (%s) with id %s\n", post.Title, post.Status, post.ID)
	return nil
}

// parsePostFile splits a markdown file into its YAML front matter and body.
func parsePostFile(data []byte) (apiclient.PostInput, error) {
	const delim = "---"

	rest, ok := bytes.CutPrefix(data, []byte(delim+"\n"))
	if !ok {
		return apiclient.PostInput{}, fmt.Errorf("missing front matter: file must start with %q", delim)
	}

	header, body, ok := bytes.Cut(rest, []byte("\n"+delim))
	if !ok {
		return apiclient.PostInput{}, fmt.Errorf("unterminated front matter: no closing %q", delim)
	}

	var fm postFrontMatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return apiclient.PostInput{}, fmt.Errorf("invalid front matter: %w", err)
	}
	if fm.Title == "" {
		return apiclient.PostInput{}, fmt.Errorf("front matter is missing a title")
	}

	content := strings.TrimSpace(string(body))
	if content == "" {
		return apiclient.PostInput{}, fmt.Errorf("post body is empty")
	}

	status := fm.Status
	if status == "" {
		status = "published"
	}

	return apiclient.PostInput{
		Title:    fm.Title,
		Excerpt:  fm.Excerpt,
		Content:  content,
		Category: fm.Category,
		Tags:     fm.Tags,
		Status:   status,
	}, nil
}
