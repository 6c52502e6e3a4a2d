package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eniola256/Blog/internal/apiclient"
	"github.com/eniola256/Blog/internal/session"
)

func (s *Server) homePage(c *gin.Context) {
	var list apiclient.PostList
	if !s.fromCache("public:posts", &list) {
		var err error
		list, err = s.api.PublicPosts(c.Request.Context(), nil)
		if err != nil {
			s.renderError(c, err)
			return
		}
		s.public.SetDefault("public:posts", list)
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"User":  currentUser(c),
		"Posts": list.Posts,
	})
}

func (s *Server) postPage(c *gin.Context) {
	slug := c.Param("slug")

	var post apiclient.Post
	if !s.fromCache("public:post:"+slug, &post) {
		var err error
		post, err = s.api.PostBySlug(c.Request.Context(), slug)
		if err != nil {
			s.renderError(c, err)
			return
		}
		s.public.SetDefault("public:post:"+slug, post)
	}

	c.HTML(http.StatusOK, "post.html", gin.H{
		"User": currentUser(c),
		"Post": post,
	})
}

func (s *Server) categoriesPage(c *gin.Context) {
	var categories []apiclient.Category
	if !s.fromCache("public:categories", &categories) {
		var err error
		categories, err = s.api.Categories(c.Request.Context())
		if err != nil {
			s.renderError(c, err)
			return
		}
		s.public.SetDefault("public:categories", categories)
	}

	c.HTML(http.StatusOK, "categories.html", gin.H{
		"User":       currentUser(c),
		"Categories": categories,
	})
}

func (s *Server) categoryPostsPage(c *gin.Context) {
	slug := c.Param("slug")

	list, err := s.api.PostsByCategory(c.Request.Context(), slug)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "posts.html", gin.H{
		"User":    currentUser(c),
		"Heading": "Posts in " + slug,
		"Posts":   list.Posts,
	})
}

func (s *Server) tagsPage(c *gin.Context) {
	var tags []apiclient.Tag
	if !s.fromCache("public:tags", &tags) {
		var err error
		tags, err = s.api.Tags(c.Request.Context())
		if err != nil {
			s.renderError(c, err)
			return
		}
		s.public.SetDefault("public:tags", tags)
	}

	c.HTML(http.StatusOK, "tags.html", gin.H{
		"User": currentUser(c),
		"Tags": tags,
	})
}

func (s *Server) tagPostsPage(c *gin.Context) {
	slug := c.Param("slug")

	tag, err := s.api.TagBySlug(c.Request.Context(), slug)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "posts.html", gin.H{
		"User":    currentUser(c),
		"Heading": "Posts tagged " + tag.Tag.Name,
		"Posts":   tag.Posts,
	})
}

func (s *Server) subscribeSubmit(c *gin.Context) {
	var form struct {
		Email string `form:"email" binding:"required,email"`
	}
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{
			"User":    currentUser(c),
			"Message": "Please enter a valid email address.",
		})
		return
	}

	if err := s.api.Subscribe(c.Request.Context(), form.Email); err != nil {
		s.renderError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/?subscribed=1")
}

// currentUser returns the signed-in user for conditional navigation, nil
// for anonymous visitors.
func currentUser(c *gin.Context) *session.User {
	return session.FromContext(c).User
}

// fromCache loads a cached public payload into out. Only backend content
// fetched without a session ever enters the cache.
func (s *Server) fromCache(key string, out any) bool {
	v, ok := s.public.Get(key)
	if !ok {
		return false
	}
	switch out := out.(type) {
	case *apiclient.PostList:
		cached, ok := v.(apiclient.PostList)
		if !ok {
			return false
		}
		*out = cached
	case *apiclient.Post:
		cached, ok := v.(apiclient.Post)
		if !ok {
			return false
		}
		*out = cached
	case *[]apiclient.Category:
		cached, ok := v.([]apiclient.Category)
		if !ok {
			return false
		}
		*out = cached
	case *[]apiclient.Tag:
		cached, ok := v.([]apiclient.Tag)
		if !ok {
			return false
		}
		*out = cached
	default:
		return false
	}
	return true
}

// renderError shows the generic error page. Systemic failures get a more
// technical message than a plain backend rejection.
func (s *Server) renderError(c *gin.Context, err error) {
	s.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Backend request failed")

	var protoErr *apiclient.ProtocolError
	if errors.As(err, &protoErr) {
		c.HTML(http.StatusBadGateway, "error.html", gin.H{
			"User":    currentUser(c),
			"Message": "The content service is misconfigured or unavailable.",
		})
		return
	}

	c.HTML(http.StatusBadGateway, "error.html", gin.H{
		"User":    currentUser(c),
		"Message": "Something went wrong loading this page. Please try again.",
	})
}
