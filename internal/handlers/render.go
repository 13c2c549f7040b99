package handlers

import (
	"fuyublog/internal/session"

	"github.com/gofiber/fiber/v2"
)

// renderPage renders a template inside the main layout. Queued flash notices
// are drained into the view data and the cleared session is written back, so
// each notice is displayed exactly once.
func renderPage(c *fiber.Ctx, sessions *session.Manager, sess *session.Session, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Flashes"] = sess.PopFlashes()
	data["LoggedIn"] = sess.LoggedIn
	data["Username"] = sess.Username
	sessions.Save(c, sess)
	return c.Render(name, data, "layouts/main")
}
