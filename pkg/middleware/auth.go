package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quilldocs/quill/internal/sessions"
)

// RequireSignedIn guards mutating document routes. An anonymous session is
// flashed "You must be signed in to do that." and redirected home instead
// of reaching the handler; no store is touched.
func RequireSignedIn(svc *sessions.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess != nil && sess.SignedIn() {
			c.Next()
			return
		}
		if sess != nil {
			sess.SetFlash(sessions.FlashError, "You must be signed in to do that.")
			_ = svc.Save(c.Request.Context(), sess)
		}
		c.Redirect(http.StatusFound, "/")
		c.Abort()
	}
}
