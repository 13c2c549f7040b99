package handlers

import (
	"errors"
	"log"

	"fuyublog/internal/forms"
	"fuyublog/internal/models"
	"fuyublog/internal/services"
	"fuyublog/internal/session"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	authService *services.AuthService
	sessions    *session.Manager
	validate    *forms.Validator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		validate:    forms.NewValidator(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/register", h.HandleRegisterForm)
	router.Post("/register", h.HandleRegister)
	router.Get("/login", h.HandleLoginForm)
	router.Post("/login", h.HandleLogin)
	router.Get("/logout", h.HandleLogout)
}

// HandleRegisterForm renders the registration form.
func (h *AuthHandler) HandleRegisterForm(c *fiber.Ctx) error {
	sess := h.sessions.Get(c)
	return renderPage(c, h.sessions, sess, "register", fiber.Map{
		"Title": "Register",
	})
}

// HandleRegister handles new user registration. Field-level validation runs
// first; the email format check runs separately once the form rules pass.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var form forms.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing register form: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}

	sess := h.sessions.Get(c)

	if errs := h.validate.Check(form); errs != nil {
		return renderPage(c, h.sessions, sess, "register", fiber.Map{
			"Title":  "Register",
			"Errors": errs,
			"Form":   form,
		})
	}

	if err := h.validate.ValidateEmail(form.Email); err != nil {
		sess.Flash(session.CategoryDanger, "Please enter a valid email address.")
		return renderPage(c, h.sessions, sess, "register", fiber.Map{
			"Title": "Register",
			"Form":  form,
		})
	}

	user := &models.User{
		Name:     form.Name,
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	}

	if err := h.authService.RegisterUser(user); err != nil {
		log.Printf("Error registering user %q: %v", form.Username, err)
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			sess.Flash(session.CategoryDanger, "That username is already taken.")
		case errors.Is(err, services.ErrEmailTaken):
			sess.Flash(session.CategoryDanger, "That email is already registered.")
		default:
			sess.Flash(session.CategoryDanger, "Could not complete registration.")
		}
		return renderPage(c, h.sessions, sess, "register", fiber.Map{
			"Title": "Register",
			"Form":  form,
		})
	}

	sess.Flash(session.CategorySuccess, "Congratulations! You have registered successfully.")
	h.sessions.Save(c, sess)
	return c.Redirect("/login")
}

// HandleLoginForm renders the login form.
func (h *AuthHandler) HandleLoginForm(c *fiber.Ctx) error {
	sess := h.sessions.Get(c)
	return renderPage(c, h.sessions, sess, "login", fiber.Map{
		"Title": "Login",
	})
}

// HandleLogin verifies credentials and establishes the session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var form forms.LoginForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing login form: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}

	sess := h.sessions.Get(c)

	user, err := h.authService.AuthenticateUser(form.Username, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			sess.Flash(session.CategoryDanger, "No such user found!")
		case errors.Is(err, services.ErrWrongPassword):
			sess.Flash(session.CategoryDanger, "Wrong password!")
		default:
			log.Printf("Error during login for user %q: %v", form.Username, err)
			sess.Flash(session.CategoryDanger, "Login failed, please try again.")
		}
		h.sessions.Save(c, sess)
		return c.Redirect("/login")
	}

	sess.LoggedIn = true
	sess.Username = user.Username
	sess.Flash(session.CategorySuccess, "You have logged in successfully!")
	h.sessions.Save(c, sess)
	return c.Redirect("/")
}

// HandleLogout clears the session and redirects home.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess := h.sessions.Get(c)
	sess.Clear()
	sess.Flash(session.CategorySuccess, "You have logged out successfully.")
	h.sessions.Save(c, sess)
	return c.Redirect("/")
}
