package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	docservice "github.com/quilldocs/quill/internal/document/service"
	"github.com/quilldocs/quill/internal/document/repository"
	"github.com/quilldocs/quill/internal/markdown"
	"github.com/quilldocs/quill/internal/sessions"
	"github.com/quilldocs/quill/internal/users"
	"github.com/quilldocs/quill/pkg/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	engine      *gin.Engine
	docs        docservice.Service
	sessionsSvc *sessions.Service
	usersSvc    *users.Service
	usersFile   string
}

// newTestApp builds the full request stack against temp storage, with an
// "admin"/"secret" account seeded.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	repo, err := repository.NewFileRepo(t.TempDir())
	require.NoError(t, err)
	docs := docservice.NewFileService(repo, markdown.New())

	usersFile := filepath.Join(t.TempDir(), "users.yml")
	usersSvc := users.NewService(users.NewFileStore(usersFile))
	require.NoError(t, usersSvc.SignUp("admin", "secret"))

	sessionsSvc := sessions.NewService(sessions.NewMemoryRepository(), time.Hour)

	g := gin.New()
	g.SetHTMLTemplate(LoadTemplates())
	g.Use(middleware.SessionMiddleware(sessionsSvc, "quill_session"))
	guard := middleware.RequireSignedIn(sessionsSvc)
	NewDocumentHandler(docs, sessionsSvc).Register(g, guard)
	NewAuthHandler(usersSvc, sessionsSvc).Register(g)

	return &testApp{
		engine:      g,
		docs:        docs,
		sessionsSvc: sessionsSvc,
		usersSvc:    usersSvc,
		usersFile:   usersFile,
	}
}

func (a *testApp) get(t *testing.T, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// signIn authenticates the seeded admin account and returns its session cookie.
func (a *testApp) signIn(t *testing.T) *http.Cookie {
	t.Helper()
	w := a.postForm(t, "/users/signin", url.Values{
		"username": {"admin"},
		"password": {"secret"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

// session resolves the server-side session for a cookie, for flash asserts.
func (a *testApp) session(t *testing.T, cookie *http.Cookie) *sessions.Session {
	t.Helper()
	sess, err := a.sessionsSvc.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	require.NotNil(t, sess)
	return sess
}
