package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quilldocs/quill/internal/sessions"
	"github.com/quilldocs/quill/pkg/logger"
)

// sessionKey is the gin context key the loaded session is stored under.
const sessionKey = "session"

// SessionMiddleware resolves the client's session from the cookie, creating
// a fresh anonymous session (and setting the cookie) when none exists. The
// session is placed in the gin context for handlers and the auth guard.
func SessionMiddleware(svc *sessions.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *sessions.Session
		if id, err := c.Cookie(cookieName); err == nil && id != "" {
			s, err := svc.Get(c.Request.Context(), id)
			if err != nil {
				logger.Warnf("session lookup failed: %v", err)
			}
			sess = s
		}
		if sess == nil {
			s, err := svc.Create(c.Request.Context())
			if err != nil {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			sess = s
			c.SetCookie(cookieName, sess.ID, 0, "/", "", false, true)
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session loaded by SessionMiddleware. It is nil
// only when the middleware is not installed.
func CurrentSession(c *gin.Context) *sessions.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*sessions.Session); ok {
			return s
		}
	}
	return nil
}
