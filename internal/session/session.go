package session

import (
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// Flash notice categories.
const (
	CategorySuccess = "success"
	CategoryDanger  = "danger"
	CategoryWarning = "warning"
)

// Flash is a one-time, category-tagged notice queued for display on the next
// rendered page.
type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// Session is the per-request view of the signed session cookie. It carries the
// authentication marker, the username, and any queued flash notices.
type Session struct {
	LoggedIn bool
	Username string
	flashes  []Flash
}

// Flash queues a notice for the next rendered page.
func (s *Session) Flash(category, message string) {
	s.flashes = append(s.flashes, Flash{Message: message, Category: category})
}

// PopFlashes returns the queued notices and removes them from the session.
// The caller must save the session afterwards so the cleared state is
// written back to the cookie.
func (s *Session) PopFlashes() []Flash {
	flashes := s.flashes
	s.flashes = nil
	return flashes
}

// Clear wipes the session, including any queued flashes.
func (s *Session) Clear() {
	s.LoggedIn = false
	s.Username = ""
	s.flashes = nil
}

// Manager signs sessions into a cookie and parses them back. The cookie value
// is an HS256 JWT, so clients carry the state but cannot tamper with it.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a new Manager signing with the given secret.
func NewManager(secret string) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    24 * time.Hour, // Session valid for 24 hours
	}
}

// Get parses the session cookie on the request. A missing, expired, or
// tampered cookie yields a fresh empty session.
func (m *Manager) Get(c *fiber.Ctx) *Session {
	token := c.Cookies(CookieName)
	if token == "" {
		return &Session{}
	}

	sess, err := m.parseToken(token)
	if err != nil {
		log.Printf("Session token rejected: %v", err)
		return &Session{}
	}
	return sess
}

// Save signs the session and sets it as a cookie on the response.
func (m *Manager) Save(c *fiber.Ctx, s *Session) {
	token, err := m.signToken(s)
	if err != nil {
		log.Printf("Failed to sign session token: %v", err)
		return
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(m.ttl),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// signToken serializes the session into a signed JWT string.
func (m *Manager) signToken(s *Session) (string, error) {
	claims := jwt.MapClaims{
		"logged_in": s.LoggedIn,
		"username":  s.Username,
		"exp":       time.Now().Add(m.ttl).Unix(),
		"iat":       time.Now().Unix(),
	}
	if len(s.flashes) > 0 {
		claims["flashes"] = s.flashes
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return tokenString, nil
}

// parseToken validates a signed session token and rebuilds the Session.
func (m *Manager) parseToken(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	sess := &Session{}
	sess.LoggedIn, _ = claims["logged_in"].(bool)
	sess.Username, _ = claims["username"].(string)

	if raw, ok := claims["flashes"].([]interface{}); ok {
		for _, entry := range raw {
			fields, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			flash := Flash{}
			flash.Message, _ = fields["message"].(string)
			flash.Category, _ = fields["category"].(string)
			sess.flashes = append(sess.flashes, flash)
		}
	}

	return sess, nil
}
