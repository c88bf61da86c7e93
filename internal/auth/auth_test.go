package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamecatalog/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type fakeTokens map[string]uint

func (f fakeTokens) ParseToken(token string) (uint, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return 0, errors.New("bad token")
}

type fakeUsers map[uint]models.User

func (f fakeUsers) GetUser(ctx context.Context, id uint) (models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return models.User{}, errors.New("not found")
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(middleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(middleware, func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	r.GET("/", handlers...)
	return r
}

func doRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := fakeTokens{"good": 1}
	r := newRouter(AuthMiddleware(tokens))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", want: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad", want: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := doRequest(r, tt.header); w.Code != tt.want {
				t.Errorf("Expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	r := newRouter(OptionalAuthMiddleware(fakeTokens{"good": 3}))

	if w := doRequest(r, "Bearer bad"); w.Code != http.StatusOK || w.Body.String() != `{"user_id":0}` {
		t.Errorf("Expected anonymous request to pass, got %d %s", w.Code, w.Body.String())
	}
	if w := doRequest(r, "Bearer good"); w.Body.String() != `{"user_id":3}` {
		t.Errorf("Expected user 3, got %s", w.Body.String())
	}
}

func TestAdminMiddleware(t *testing.T) {
	tokens := fakeTokens{"admin": 1, "user": 2, "ghost": 9}
	users := fakeUsers{
		1: {ID: 1, Role: models.RoleAdmin},
		2: {ID: 2, Role: models.RoleUser},
	}
	r := newRouter(AuthMiddleware(tokens), AdminMiddleware(users))

	tests := []struct {
		header string
		want   int
	}{
		{header: "Bearer admin", want: http.StatusOK},
		{header: "Bearer user", want: http.StatusForbidden},
		{header: "Bearer ghost", want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		if w := doRequest(r, tt.header); w.Code != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.header, tt.want, w.Code)
		}
	}

	standalone := newRouter(AdminMiddleware(users))
	if w := doRequest(standalone, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without AuthMiddleware, got %d", w.Code)
	}
}
