package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eniola256/Blog/internal/apiclient"
	"github.com/eniola256/Blog/internal/guard"
	"github.com/eniola256/Blog/internal/session"
)

// tokenSource reads the bearer token from the request's cookie store at
// call time, so a logout earlier in the request is observed immediately.
func tokenSource(c *gin.Context) apiclient.TokenSource {
	return apiclient.TokenSourceFunc(func() (string, bool) {
		store := session.StoreFromContext(c)
		if store == nil {
			return "", false
		}
		cred, ok := store.Read()
		if !ok {
			return "", false
		}
		return cred.Token, true
	})
}

func (s *Server) adminOverviewPage(c *gin.Context) {
	sess := session.FromContext(c)

	posts, err := s.api.AdminPosts(c.Request.Context(), tokenSource(c))
	if err != nil {
		s.renderDashboardError(c, err)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":    sess.User,
		"Heading": "Admin dashboard",
		"Posts":   posts,
		"Area":    "/admin",
	})
}

func (s *Server) adminPostsPage(c *gin.Context) {
	posts, err := s.api.AdminPosts(c.Request.Context(), tokenSource(c))
	if err != nil {
		s.renderDashboardError(c, err)
		return
	}

	c.HTML(http.StatusOK, "posts_table.html", gin.H{
		"User":  session.FromContext(c).User,
		"Posts": posts,
		"Area":  "/admin",
	})
}

func (s *Server) adminDeletePost(c *gin.Context) {
	if err := s.api.DeletePost(c.Request.Context(), tokenSource(c), c.Param("id")); err != nil {
		s.renderDashboardError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/posts")
}

func (s *Server) adminCategoriesPage(c *gin.Context) {
	categories, err := s.api.AdminCategories(c.Request.Context(), tokenSource(c))
	if err != nil {
		s.renderDashboardError(c, err)
		return
	}

	c.HTML(http.StatusOK, "taxonomy_table.html", gin.H{
		"User":    session.FromContext(c).User,
		"Heading": "Categories",
		"Items":   categoryItems(categories),
		"Action":  "/admin/categories",
	})
}

func (s *Server) adminCreateCategory(c *gin.Context) {
	var form struct {
		Name string `form:"name" binding:"required"`
	}
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusFound, "/admin/categories")
		return
	}

	input := apiclient.CategoryInput{Name: form.Name}
	if _, err := s.api.CreateCategory(c.Request.Context(), tokenSource(c), input); err != nil {
		s.renderDashboardError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/categories")
}

func (s *Server) adminDeleteCategory(c *gin.Context) {
	if err := s.api.DeleteCategory(c.Request.Context(), tokenSource(c), c.Param("id")); err != nil {
		s.renderDashboardError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/categories")
}

func (s *Server) adminTagsPage(c *gin.Context) {
	tags, err := s.api.AdminTags(c.Request.Context(), tokenSource(c))
	if err != nil {
		s.renderDashboardError(c, err)
		return
	}

	c.HTML(http.StatusOK, "taxonomy_table.html", gin.H{
		"User":    session.FromContext(c).User,
		"Heading": "Tags",
		"Items":   tagItems(tags),
		"Action":  "/admin/tags",
	})
}

func (s *Server) adminCreateTag(c *gin.Context) {
	var form struct {
		Name string `form:"name" binding:"required"`
	}
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusFound, "/admin/tags")
		return
	}

	input := apiclient.CategoryInput{Name: form.Name}
	if _, err := s.api.CreateTag(c.Request.Context(), tokenSource(c), input); err != nil {
		s.renderDashboardError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/tags")
}

func (s *Server) adminDeleteTag(c *gin.Context) {
	if err := s.api.DeleteTag(c.Request.Context(), tokenSource(c), c.Param("id")); err != nil {
		s.renderDashboardError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/tags")
}

func (s *Server) adminSubscribersPage(c *gin.Context) {
	subscribers, err := s.api.Subscribers(c.Request.Context(), tokenSource(c))
	if err != nil {
		s.renderDashboardError(c, err)
		return
	}

	c.HTML(http.StatusOK, "subscribers.html", gin.H{
		"User":        session.FromContext(c).User,
		"Subscribers": subscribers,
	})
}

func (s *Server) adminDeleteSubscriber(c *gin.Context) {
	if err := s.api.DeleteSubscriber(c.Request.Context(), tokenSource(c), c.Param("id")); err != nil {
		s.renderDashboardError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/admin/subscribers")
}

func (s *Server) authorOverviewPage(c *gin.Context) {
	sess := session.FromContext(c)

	posts, err := s.api.AuthorPosts(c.Request.Context(), tokenSource(c))
	if err != nil {
		s.renderDashboardError(c, err)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":    sess.User,
		"Heading": "Author dashboard",
		"Posts":   posts,
		"Area":    "/author",
	})
}

func (s *Server) authorPostsPage(c *gin.Context) {
	posts, err := s.api.AuthorPosts(c.Request.Context(), tokenSource(c))
	if err != nil {
		s.renderDashboardError(c, err)
		return
	}

	c.HTML(http.StatusOK, "posts_table.html", gin.H{
		"User":  session.FromContext(c).User,
		"Posts": posts,
		"Area":  "/author",
	})
}

func (s *Server) authorDeletePost(c *gin.Context) {
	if err := s.api.DeletePost(c.Request.Context(), tokenSource(c), c.Param("id")); err != nil {
		s.renderDashboardError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/author/posts")
}

// renderDashboardError handles backend failures inside a protected area.
// A rejected or expired token ends the session and sends the user back to
// the login page; anything else falls through to the generic error page.
func (s *Server) renderDashboardError(c *gin.Context, err error) {
	var authErr *apiclient.AuthenticationError
	if errors.As(err, &authErr) || errors.Is(err, apiclient.ErrNotAuthenticated) {
		sess := session.FromContext(c)
		sess.Logout(session.StoreFromContext(c))
		c.Redirect(http.StatusFound, guard.LoginPath)
		return
	}
	s.renderError(c, err)
}

type taxonomyItem struct {
	ID   string
	Name string
	Slug string
}

func categoryItems(categories []apiclient.Category) []taxonomyItem {
	items := make([]taxonomyItem, 0, len(categories))
	for _, cat := range categories {
		items = append(items, taxonomyItem{ID: cat.ID, Name: cat.Name, Slug: cat.Slug})
	}
	return items
}

func tagItems(tags []apiclient.Tag) []taxonomyItem {
	items := make([]taxonomyItem, 0, len(tags))
	for _, tag := range tags {
		items = append(items, taxonomyItem{ID: tag.ID, Name: tag.Name, Slug: tag.Slug})
	}
	return items
}
