package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// SessionCookie holds the browser session that scopes exports.
	SessionCookie = "summary_session"
	// SessionLocalKey is the key used to store the session ID in Fiber's context locals.
	SessionLocalKey = "session_id"
)

// Session ensures every request carries a session ID. A missing or malformed
// cookie is replaced by a fresh UUID.
func Session(maxAge time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(SessionCookie)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(maxAge.Seconds()),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		c.Locals(SessionLocalKey, id)
		return c.Next()
	}
}

// SessionID returns the session stored by Session, or "".
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(SessionLocalKey).(string)
	return id
}
