package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quilldocs/quill/internal/sessions"
	"github.com/quilldocs/quill/internal/users"
	"github.com/quilldocs/quill/pkg/logger"
	"github.com/quilldocs/quill/pkg/metrics"
	"github.com/quilldocs/quill/pkg/middleware"
)

// AuthHandler serves the sign-in, sign-out, and signup flows.
type AuthHandler struct {
	usersSvc    *users.Service
	sessionsSvc *sessions.Service
}

func NewAuthHandler(u *users.Service, s *sessions.Service) *AuthHandler {
	return &AuthHandler{usersSvc: u, sessionsSvc: s}
}

// Register routes under /users
func (h *AuthHandler) Register(r *gin.Engine) {
	u := r.Group("/users")
	u.GET("/signin", h.SignInForm)
	u.POST("/signin", h.SignIn)
	u.POST("/signout", h.SignOut)
	u.GET("/signup", h.SignUpForm)
	u.POST("/signup", h.SignUp)
}

func (h *AuthHandler) SignInForm(c *gin.Context) {
	render(c, h.sessionsSvc, http.StatusOK, "signin", gin.H{"Username": ""})
}

// SignIn authenticates the submitted credentials. Success binds the
// username to the session; failure re-renders the form with 422.
func (h *AuthHandler) SignIn(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	ok, err := h.usersSvc.Authenticate(username, password)
	if err != nil {
		logger.Errorf("sign in %s: %v", username, err)
		metrics.SignInAttempts.WithLabelValues("error").Inc()
		c.String(http.StatusInternalServerError, "credential store unavailable")
		return
	}
	if !ok {
		metrics.SignInAttempts.WithLabelValues("invalid").Inc()
		flash(c, h.sessionsSvc, sessions.FlashError, "Invalid Credentials")
		render(c, h.sessionsSvc, http.StatusUnprocessableEntity, "signin", gin.H{
			"Username": username,
		})
		return
	}
	sess := middleware.CurrentSession(c)
	sess.SetFlash(sessions.FlashSuccess, "Welcome!")
	if err := h.sessionsSvc.SignIn(c.Request.Context(), sess, username); err != nil {
		logger.Errorf("persist session for %s: %v", username, err)
		c.String(http.StatusInternalServerError, "could not establish session")
		return
	}
	metrics.SignInAttempts.WithLabelValues("ok").Inc()
	c.Redirect(http.StatusFound, "/")
}

// SignOut clears the session's username.
func (h *AuthHandler) SignOut(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	sess.SetFlash(sessions.FlashSuccess, "You have been signed out.")
	if err := h.sessionsSvc.SignOut(c.Request.Context(), sess); err != nil {
		logger.Errorf("sign out: %v", err)
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) SignUpForm(c *gin.Context) {
	render(c, h.sessionsSvc, http.StatusOK, "signup", gin.H{"Username": ""})
}

// SignUp creates a new account after the ordered username checks.
func (h *AuthHandler) SignUp(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if err := h.usersSvc.ValidateSignup(username); err != nil {
		flash(c, h.sessionsSvc, sessions.FlashError, err.Error())
		render(c, h.sessionsSvc, http.StatusUnprocessableEntity, "signup", gin.H{
			"Username": username,
		})
		return
	}
	if err := h.usersSvc.SignUp(username, password); err != nil {
		// a concurrent signup may have claimed the name between the check
		// and the write
		if errors.Is(err, users.ErrUsernameTaken) {
			flash(c, h.sessionsSvc, sessions.FlashError,
				fmt.Sprintf("Username '%s' already exists.", username))
			render(c, h.sessionsSvc, http.StatusUnprocessableEntity, "signup", gin.H{
				"Username": username,
			})
			return
		}
		logger.Errorf("sign up %s: %v", username, err)
		c.String(http.StatusInternalServerError, "could not create account")
		return
	}
	metrics.SignUps.Inc()
	flashAndRedirect(c, h.sessionsSvc, sessions.FlashSuccess,
		fmt.Sprintf("Account for %s has been created.", username), "/")
}
