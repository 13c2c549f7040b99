package handlers

import (
	"errors"
	"log"

	"fuyublog/internal/forms"
	"fuyublog/internal/services"
	"fuyublog/internal/session"

	"github.com/gofiber/fiber/v2"
)

// PostHandler handles the post pages: dashboard, creation, public listing,
// the ownership-gated mutations, and search.
type PostHandler struct {
	postService *services.PostService
	sessions    *session.Manager
	validate    *forms.Validator
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService *services.PostService, sessions *session.Manager) *PostHandler {
	return &PostHandler{
		postService: postService,
		sessions:    sessions,
		validate:    forms.NewValidator(),
	}
}

// RegisterRoutes registers the post routes with the Fiber app. loginRequired
// gates the dashboard, creation, and every mutating route.
func (h *PostHandler) RegisterRoutes(router fiber.Router, loginRequired fiber.Handler) {
	router.Get("/dashboard", loginRequired, h.HandleDashboard)
	router.Get("/sharepost", loginRequired, h.HandleSharePostForm)
	router.Post("/sharepost", loginRequired, h.HandleSharePost)
	router.Get("/posts", h.HandleAllPosts)
	router.Post("/delete_post/:id", loginRequired, h.HandleDeletePost)
	router.Get("/edit_post/:id", loginRequired, h.HandleEditPostForm)
	router.Post("/update_post/:id", loginRequired, h.HandleUpdatePost)
	router.Get("/search", h.HandleSearchRedirect)
	router.Post("/search", h.HandleSearch)
}

// HandleDashboard lists the posts owned by the session's user.
func (h *PostHandler) HandleDashboard(c *fiber.Ctx) error {
	sess := h.sessions.Get(c)

	posts, err := h.postService.GetPostsByAuthor(sess.Username)
	if err != nil {
		log.Printf("Error getting posts for %q: %v", sess.Username, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Could not retrieve posts")
	}

	return renderPage(c, h.sessions, sess, "dashboard", fiber.Map{
		"Title":   "Dashboard",
		"MyPosts": posts,
	})
}

// HandleSharePostForm renders the post creation form.
func (h *PostHandler) HandleSharePostForm(c *fiber.Ctx) error {
	sess := h.sessions.Get(c)
	return renderPage(c, h.sessions, sess, "sharepost", fiber.Map{
		"Title": "Share Post",
	})
}

// HandleSharePost creates a new post. The form defines an author field but it
// is never read; the author always comes from the session.
func (h *PostHandler) HandleSharePost(c *fiber.Ctx) error {
	var form forms.PostForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing post form: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}

	sess := h.sessions.Get(c)

	if errs := h.validate.Check(form); errs != nil {
		return renderPage(c, h.sessions, sess, "sharepost", fiber.Map{
			"Title":  "Share Post",
			"Errors": errs,
			"Form":   form,
		})
	}

	if _, err := h.postService.CreatePost(form.Title, form.Content, sess.Username); err != nil {
		log.Printf("Error creating post for %q: %v", sess.Username, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Could not create post")
	}

	sess.Flash(session.CategorySuccess, "Congratulations! Your post has been shared.")
	h.sessions.Save(c, sess)
	return c.Redirect("/dashboard")
}

// HandleAllPosts lists all posts. No auth required.
func (h *PostHandler) HandleAllPosts(c *fiber.Ctx) error {
	sess := h.sessions.Get(c)

	posts, err := h.postService.GetAllPosts()
	if err != nil {
		log.Printf("Error getting all posts: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Could not retrieve posts")
	}

	return renderPage(c, h.sessions, sess, "posts", fiber.Map{
		"Title":    "Posts",
		"AllPosts": posts,
	})
}

// HandleDeletePost deletes a post after the ownership check.
func (h *PostHandler) HandleDeletePost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusNotFound).SendString("Post not found")
	}

	sess := h.sessions.Get(c)

	err = h.postService.DeletePost(uint(id), sess.Username)
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		return c.Status(fiber.StatusNotFound).SendString("Post not found")
	case errors.Is(err, services.ErrNotOwner):
		sess.Flash(session.CategoryDanger, "You cannot delete this post.")
	case err != nil:
		log.Printf("Error deleting post %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Could not delete post")
	default:
		sess.Flash(session.CategorySuccess, "Post deleted.")
	}

	h.sessions.Save(c, sess)
	return c.Redirect("/dashboard")
}

// HandleEditPostForm renders the edit form for a post the caller owns.
func (h *PostHandler) HandleEditPostForm(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusNotFound).SendString("Post not found")
	}

	sess := h.sessions.Get(c)

	post, err := h.postService.GetPostByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Post not found")
		}
		log.Printf("Error getting post %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Could not retrieve post")
	}

	if post.Author != sess.Username {
		sess.Flash(session.CategoryDanger, "You cannot edit this post.")
		h.sessions.Save(c, sess)
		return c.Redirect("/dashboard")
	}

	return renderPage(c, h.sessions, sess, "edit_post", fiber.Map{
		"Title": "Edit Post",
		"Post":  post,
	})
}

// HandleUpdatePost applies a validated title and content to a post the
// caller owns. The same field rules as creation apply.
func (h *PostHandler) HandleUpdatePost(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusNotFound).SendString("Post not found")
	}

	sess := h.sessions.Get(c)

	post, err := h.postService.GetPostByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Post not found")
		}
		log.Printf("Error getting post %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Could not retrieve post")
	}

	if post.Author != sess.Username {
		sess.Flash(session.CategoryDanger, "You cannot update this post.")
		h.sessions.Save(c, sess)
		return c.Redirect("/dashboard")
	}

	var form forms.PostForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing update form: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}

	if errs := h.validate.Check(form); errs != nil {
		post.Title = form.Title
		post.Content = form.Content
		return renderPage(c, h.sessions, sess, "edit_post", fiber.Map{
			"Title":  "Edit Post",
			"Post":   post,
			"Errors": errs,
		})
	}

	if err := h.postService.UpdatePost(uint(id), sess.Username, form.Title, form.Content); err != nil {
		log.Printf("Error updating post %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Could not update post")
	}

	sess.Flash(session.CategorySuccess, "Post updated.")
	h.sessions.Save(c, sess)
	return c.Redirect("/dashboard")
}

// HandleSearchRedirect sends GET /search callers to the public listing.
func (h *PostHandler) HandleSearchRedirect(c *fiber.Ctx) error {
	return c.Redirect("/posts")
}

// HandleSearch matches the keyword against post titles.
func (h *PostHandler) HandleSearch(c *fiber.Ctx) error {
	var form forms.SearchForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing search form: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}

	sess := h.sessions.Get(c)

	posts, err := h.postService.SearchPosts(form.Keyword)
	if err != nil {
		log.Printf("Error searching posts for %q: %v", form.Keyword, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Could not search posts")
	}

	if len(posts) == 0 {
		sess.Flash(session.CategoryWarning, "No posts matched your search.")
		h.sessions.Save(c, sess)
		return c.Redirect("/posts")
	}

	return renderPage(c, h.sessions, sess, "search_results", fiber.Map{
		"Title":      "Search Results",
		"FoundPosts": posts,
		"Keyword":    form.Keyword,
	})
}
