package handlers

import (
	"fuyublog/internal/session"

	"github.com/gofiber/fiber/v2"
)

// PageHandler serves the static informational pages.
type PageHandler struct {
	sessions *session.Manager
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(sessions *session.Manager) *PageHandler {
	return &PageHandler{
		sessions: sessions,
	}
}

// RegisterRoutes registers the page routes with the Fiber app.
func (h *PageHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHome)
	router.Get("/about", h.HandleAbout)
}

// HandleHome renders the home page.
func (h *PageHandler) HandleHome(c *fiber.Ctx) error {
	sess := h.sessions.Get(c)
	return renderPage(c, h.sessions, sess, "index", fiber.Map{
		"Title": "Home",
	})
}

// HandleAbout renders the about page.
func (h *PageHandler) HandleAbout(c *fiber.Ctx) error {
	sess := h.sessions.Get(c)
	return renderPage(c, h.sessions, sess, "about", fiber.Map{
		"Title": "About",
	})
}
