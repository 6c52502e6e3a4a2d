package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

// TagWithPosts is the backend's payload for a tag page.
type TagWithPosts struct {
	Tag   Tag    `json:"tag"`
	Posts []Post `json:"posts"`
}

// Categories lists the public categories.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.doJSON(ctx, http.MethodGet, "/api/public/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CategoryBySlug fetches one category.
func (c *Client) CategoryBySlug(ctx context.Context, slug string) (Category, error) {
	var category Category
	if err := c.doJSON(ctx, http.MethodGet, "/api/public/categories/"+url.PathEscape(slug), nil, nil, &category); err != nil {
		return Category{}, err
	}
	return category, nil
}

// Tags lists the public tags.
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := c.doJSON(ctx, http.MethodGet, "/api/public/tags", nil, nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// TagBySlug fetches one tag together with its posts.
func (c *Client) TagBySlug(ctx context.Context, slug string) (TagWithPosts, error) {
	var tag TagWithPosts
	if err := c.doJSON(ctx, http.MethodGet, "/api/public/tags/"+url.PathEscape(slug), nil, nil, &tag); err != nil {
		return TagWithPosts{}, err
	}
	return tag, nil
}

// CategoryInput is the body for creating or updating a category or tag.
type CategoryInput struct {
	Name string `json:"name"`
}

// AdminCategories lists categories with admin metadata.
func (c *Client) AdminCategories(ctx context.Context, ts TokenSource) ([]Category, error) {
	var categories []Category
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/categories", ts, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, ts TokenSource, in CategoryInput) (Category, error) {
	var category Category
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/categories", ts, in, &category); err != nil {
		return Category{}, err
	}
	return category, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, ts TokenSource, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/categories/"+url.PathEscape(id), ts, nil, nil)
}

// AdminTags lists tags with admin metadata.
func (c *Client) AdminTags(ctx context.Context, ts TokenSource) ([]Tag, error) {
	var tags []Tag
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/tags", ts, nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTag creates a tag.
func (c *Client) CreateTag(ctx context.Context, ts TokenSource, in CategoryInput) (Tag, error) {
	var tag Tag
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/tags", ts, in, &tag); err != nil {
		return Tag{}, err
	}
	return tag, nil
}

// DeleteTag removes a tag.
func (c *Client) DeleteTag(ctx context.Context, ts TokenSource, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/tags/"+url.PathEscape(id), ts, nil, nil)
}
