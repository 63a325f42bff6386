package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seyone-academy-go/internal/repository"
	"seyone-academy-go/internal/service"
	"seyone-academy-go/pkg/events"
	"seyone-academy-go/pkg/kv"
	"seyone-academy-go/pkg/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newUserService(t *testing.T) service.UserService {
	t.Helper()
	store, err := kv.OpenBolt(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return service.NewUserService(repository.NewUserRepository(store), events.NewBus(), 0)
}

func TestClientIdentity_IssuesAndReusesToken(t *testing.T) {
	jwtManager := token.NewJWTManager("test-secret", 1)
	r := gin.New()
	r.Use(ClientIdentity(jwtManager, false))
	r.GET("/id", func(c *gin.Context) { c.String(http.StatusOK, ClientID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/id", nil))
	require.Equal(t, http.StatusOK, w.Code)
	first := w.Body.String()
	issued := w.Header().Get(ClientTokenHeader)
	require.NotEmpty(t, first)
	require.NotEmpty(t, issued)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, ClientCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// Cookie reuse keeps the id.
	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, first, w.Body.String())
	assert.Empty(t, w.Header().Get(ClientTokenHeader))

	// So does the header.
	req = httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(ClientTokenHeader, issued)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, first, w.Body.String())
}

func TestClientIdentity_ForgedTokenGetsNewIdentity(t *testing.T) {
	forger := token.NewJWTManager("other-secret", 1)
	forged, err := forger.GenerateToken("victim")
	require.NoError(t, err)

	r := gin.New()
	r.Use(ClientIdentity(token.NewJWTManager("test-secret", 1), false))
	r.GET("/id", func(c *gin.Context) { c.String(http.StatusOK, ClientID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(ClientTokenHeader, forged)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "victim", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(ClientTokenHeader))
}

func TestRequireLoginAndAdmin(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()
	_, err := users.Register(ctx, "admin-client", service.RegisterInput{Name: "Admin", Email: "Boss@Seyone.test", Password: "pw"})
	require.NoError(t, err)
	_, err = users.Register(ctx, "student-client", service.RegisterInput{Name: "Student", Email: "s@seyone.test", Password: "pw"})
	require.NoError(t, err)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(clientIDKey, c.GetHeader("X-Test-Client"))
		c.Next()
	})
	r.GET("/private", RequireLogin(users), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.String(http.StatusOK, user.Name)
	})
	r.GET("/admin", RequireLogin(users), AdminAuthMiddleware([]string{"boss@seyone.test"}), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		client   string
		path     string
		wantCode int
	}{
		{"anonymous private", "nobody", "/private", http.StatusUnauthorized},
		{"student private", "student-client", "/private", http.StatusOK},
		{"anonymous admin", "nobody", "/admin", http.StatusUnauthorized},
		{"student admin", "student-client", "/admin", http.StatusForbidden},
		{"admin admin", "admin-client", "/admin", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("X-Test-Client", tt.client)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestRedactPasswords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"email":"a@x.com","password":"hunter2"}`, `{"email":"a@x.com","password":"***"}`},
		{`{"password" : "with \"quotes\""}`, `{"password" : "***"}`},
		{`{"message":"no secrets"}`, `{"message":"no secrets"}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, redactPasswords(tt.in))
	}
}

func TestRequestLogger_BodyCapture(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		accept      string
		wantWrapped bool
		wantBody    string
	}{
		{name: "json response", path: "/api/v1/courses", wantWrapped: true, wantBody: `{"ok":true}`},
		{name: "stream without accept header", path: "/api/v1/stream", wantWrapped: true, wantBody: ""},
		{name: "event stream route", path: "/api/v1/auth/events", wantWrapped: false},
		{name: "accept event stream", path: "/api/v1/stream", accept: "text/event-stream", wantWrapped: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured *bodyLogWriter
			r := gin.New()
			r.Use(RequestLogger())
			r.GET("/api/v1/courses", func(c *gin.Context) {
				captured, _ = c.Writer.(*bodyLogWriter)
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})
			stream := func(c *gin.Context) {
				captured, _ = c.Writer.(*bodyLogWriter)
				for i := 0; i < 3; i++ {
					c.SSEvent("tick", i)
				}
			}
			r.GET("/api/v1/stream", stream)
			r.GET("/api/v1/auth/events", stream)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code)

			if !tt.wantWrapped {
				assert.Nil(t, captured)
				return
			}
			require.NotNil(t, captured)
			assert.Equal(t, tt.wantBody, captured.body.String())
		})
	}
}
