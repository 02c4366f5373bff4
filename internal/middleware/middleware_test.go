package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tabungan/internal/domain"
	"tabungan/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, codec *utils.SessionCodec) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(SessionMiddleware(codec))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/any", RequireAuthenticated(), ok)
	r.GET("/admin", RequireRole(domain.RoleAdmin), ok)
	r.POST("/login", func(c *gin.Context) {
		value, err := codec.Encode(domain.Principal{UserID: 1, Username: "admin", Role: domain.RoleAdmin})
		require.NoError(t, err)
		SetSessionCookie(c, codec, value, false)
		c.Status(http.StatusNoContent)
	})
	return r
}

func request(r http.Handler, method, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionFor(t *testing.T, codec *utils.SessionCodec, p domain.Principal) *http.Cookie {
	t.Helper()
	value, err := codec.Encode(p)
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookie, Value: value}
}

func TestGates(t *testing.T) {
	now := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	codec, err := utils.NewSessionCodec("test-secret", 8*time.Hour)
	require.NoError(t, err)
	codec.WithClock(func() time.Time { return now })
	r := newRouter(t, codec)

	sid := uint(3)
	admin := sessionFor(t, codec, domain.Principal{UserID: 1, Username: "admin", Role: domain.RoleAdmin})
	member := sessionFor(t, codec, domain.Principal{UserID: 2, Username: "fauzi", Role: domain.RoleMember, StudentID: &sid})

	t.Run("AnonymousIsRedirected", func(t *testing.T) {
		for _, path := range []string{"/any", "/admin"} {
			w := request(r, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, LoginPath, w.Header().Get("Location"))
		}
	})

	t.Run("GarbageCookieIsAnonymous", func(t *testing.T) {
		w := request(r, http.MethodGet, "/any", &http.Cookie{Name: SessionCookie, Value: "garbage"})
		assert.Equal(t, http.StatusFound, w.Code)
	})

	t.Run("MemberPassesAuthenticatedGate", func(t *testing.T) {
		w := request(r, http.MethodGet, "/any", member)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("MemberIsForbiddenFromAdmin", func(t *testing.T) {
		w := request(r, http.MethodGet, "/admin", member)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Location"))
	})

	t.Run("AdminPasses", func(t *testing.T) {
		w := request(r, http.MethodGet, "/admin", admin)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("LoginCookieAttributes", func(t *testing.T) {
		w := request(r, http.MethodPost, "/login", nil)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, SessionCookie, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
		assert.Equal(t, int((8 * time.Hour).Seconds()), cookies[0].MaxAge)
	})

	t.Run("ExpiredSessionIsRedirected", func(t *testing.T) {
		now = now.Add(8*time.Hour + time.Second)
		defer func() { now = now.Add(-(8*time.Hour + time.Second)) }()

		w := request(r, http.MethodGet, "/admin", admin)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, LoginPath, w.Header().Get("Location"))
	})
}
