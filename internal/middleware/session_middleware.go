package middleware

import (
	"fuyublog/internal/session"

	"github.com/gofiber/fiber/v2"
)

// LoginRequired is a Fiber middleware gating a route on an authenticated
// session. Unauthenticated callers get a flash notice and a redirect to the
// login page; the wrapped handler is never invoked. The source design left
// the post mutation routes unguarded and faulted on a missing session, so
// the guard is applied uniformly here.
func LoginRequired(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := sessions.Get(c)
		if !sess.LoggedIn {
			sess.Flash(session.CategoryDanger, "Please log in to view this page.")
			sessions.Save(c, sess)
			return c.Redirect("/login")
		}

		// Store the identity in the Fiber context for subsequent handlers
		c.Locals("username", sess.Username)

		// Continue to the next handler
		return c.Next()
	}
}
