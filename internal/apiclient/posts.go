package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

// Author is the post author as embedded in backend post payloads.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category is a blog category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Tag is a blog tag.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Post is a blog post as served by the backend.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	Category  *Category `json:"category,omitempty"`
	Tags      []Tag     `json:"tags,omitempty"`
	Author    *Author   `json:"author,omitempty"`
	Likes     int       `json:"likes"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// PostList is a page of posts.
type PostList struct {
	Posts []Post `json:"posts"`
	Total int    `json:"total"`
}

// PostInput is the body for creating or updating a post.
type PostInput struct {
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt,omitempty"`
	Content  string   `json:"content"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Status   string   `json:"status,omitempty"`
}

// PublicPosts lists published posts. query supports the backend's filter
// parameters (category, tag, search, page).
func (c *Client) PublicPosts(ctx context.Context, query url.Values) (PostList, error) {
	path := "/api/public/posts"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var list PostList
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &list); err != nil {
		return PostList{}, err
	}
	return list, nil
}

// PostBySlug fetches one published post.
func (c *Client) PostBySlug(ctx context.Context, slug string) (Post, error) {
	var post Post
	if err := c.doJSON(ctx, http.MethodGet, "/api/public/posts/"+url.PathEscape(slug), nil, nil, &post); err != nil {
		return Post{}, err
	}
	return post, nil
}

// PostsByCategory lists published posts in one category.
func (c *Client) PostsByCategory(ctx context.Context, categorySlug string) (PostList, error) {
	return c.PublicPosts(ctx, url.Values{"category": {categorySlug}})
}

// PostsByTag lists published posts carrying one tag.
func (c *Client) PostsByTag(ctx context.Context, tagSlug string) (PostList, error) {
	return c.PublicPosts(ctx, url.Values{"tag": {tagSlug}})
}

// AdminPosts lists every post regardless of author or status.
func (c *Client) AdminPosts(ctx context.Context, ts TokenSource) ([]Post, error) {
	var list PostList
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/posts", ts, nil, &list); err != nil {
		return nil, err
	}
	return list.Posts, nil
}

// AuthorPosts lists the calling author's own posts.
func (c *Client) AuthorPosts(ctx context.Context, ts TokenSource) ([]Post, error) {
	var list PostList
	if err := c.doJSON(ctx, http.MethodGet, "/api/author/posts", ts, nil, &list); err != nil {
		return nil, err
	}
	return list.Posts, nil
}

// CreatePost creates a post owned by the calling user.
func (c *Client) CreatePost(ctx context.Context, ts TokenSource, in PostInput) (Post, error) {
	var post Post
	if err := c.doJSON(ctx, http.MethodPost, "/api/posts", ts, in, &post); err != nil {
		return Post{}, err
	}
	return post, nil
}

// UpdatePost replaces a post's content and metadata.
func (c *Client) UpdatePost(ctx context.Context, ts TokenSource, id string, in PostInput) (Post, error) {
	var post Post
	if err := c.doJSON(ctx, http.MethodPut, "/api/posts/"+url.PathEscape(id), ts, in, &post); err != nil {
		return Post{}, err
	}
	return post, nil
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, ts TokenSource, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id), ts, nil, nil)
}
