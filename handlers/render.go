package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quilldocs/quill/internal/sessions"
	"github.com/quilldocs/quill/pkg/logger"
	"github.com/quilldocs/quill/pkg/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// LoadTemplates parses the embedded page templates for gin's HTML renderer.
func LoadTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// render writes an HTML page. The session's pending flash is popped into
// the page data and persisted cleared, so each message shows exactly once.
func render(c *gin.Context, sessionsSvc *sessions.Service, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if sess := middleware.CurrentSession(c); sess != nil {
		if _, ok := data["Username"]; !ok {
			data["Username"] = sess.Username
		}
		if f := sess.PopFlash(); f != nil {
			data["Flash"] = f
			if err := sessionsSvc.Save(c.Request.Context(), sess); err != nil {
				logger.Warnf("failed to clear flash: %v", err)
			}
		}
	}
	c.HTML(status, name, data)
}

// flashAndRedirect records a one-time message and sends the client to `to`.
func flashAndRedirect(c *gin.Context, sessionsSvc *sessions.Service, kind, text, to string) {
	if sess := middleware.CurrentSession(c); sess != nil {
		sess.SetFlash(kind, text)
		if err := sessionsSvc.Save(c.Request.Context(), sess); err != nil {
			logger.Warnf("failed to save flash: %v", err)
		}
	}
	c.Redirect(http.StatusFound, to)
}

// flash records a one-time message without redirecting; the following
// render pops it. Used by 422 re-renders of forms.
func flash(c *gin.Context, sessionsSvc *sessions.Service, kind, text string) {
	if sess := middleware.CurrentSession(c); sess != nil {
		sess.SetFlash(kind, text)
		if err := sessionsSvc.Save(c.Request.Context(), sess); err != nil {
			logger.Warnf("failed to save flash: %v", err)
		}
	}
}
