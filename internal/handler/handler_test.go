package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"gamecatalog/backend/internal/catalog"
	"gamecatalog/backend/internal/hub"
	"gamecatalog/backend/internal/images"
	"gamecatalog/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const testMaxImageBytes = 1024

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router     *gin.Engine
	svc        *catalog.Service
	events     *hub.Hub
	tokens     *jwt.Issuer
	imageDir   string
	adminToken string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	dir := t.TempDir()

	stores, _, err := catalog.OpenCSVStores(filepath.Join(dir, "data"))
	if err != nil {
		t.Fatalf("OpenCSVStores failed: %v", err)
	}
	imageDir := filepath.Join(dir, "images")
	imageStore, err := images.NewLocalStore(imageDir, "/images")
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	svc := catalog.NewService(stores, imageStore, testMaxImageBytes)
	ctx := context.Background()
	if err := svc.EnsureAdmin(ctx, "admin@example.com", "admin-password"); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	admin, err := svc.Authenticate(ctx, "admin@example.com", "admin-password")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}

	tokens := jwt.NewIssuer("test-secret", time.Hour)
	adminToken, err := tokens.GenerateToken(admin.ID)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	events := hub.NewHub()
	router := gin.New()
	New(svc, events, tokens, testMaxImageBytes).RegisterRoutes(router.Group("/api/v1"))

	return &testAPI{
		router:     router,
		svc:        svc,
		events:     events,
		tokens:     tokens,
		imageDir:   imageDir,
		adminToken: adminToken,
	}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// userToken registers a regular user and returns its token.
func (a *testAPI) userToken(t *testing.T, email string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/auth/register", RegisterInput{Name: "Player", Email: email, Password: "password123"}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Register failed: %d %s", w.Code, w.Body.String())
	}
	return decode[TokenResponse](t, w).Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("Failed to decode %q: %v", w.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("Expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

func TestDeveloperEndpoints(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/admin/developers", DeveloperInput{Name: "Nintendo", Country: "Japan", FoundedYear: 1889}, api.adminToken)
	expectStatus(t, w, http.StatusCreated)
	dev := decode[DeveloperResponse](t, w)
	if dev.ID != 1 || dev.Name != "Nintendo" {
		t.Errorf("Unexpected developer: %+v", dev)
	}

	w = api.do(t, http.MethodPost, "/admin/developers", DeveloperInput{Name: " nintendo "}, api.adminToken)
	expectStatus(t, w, http.StatusConflict)

	w = api.do(t, http.MethodPost, "/admin/developers", map[string]string{"country": "Japan"}, api.adminToken)
	expectStatus(t, w, http.StatusBadRequest)

	w = api.do(t, http.MethodPut, "/admin/developers/1", DeveloperInput{Name: "Nintendo", Country: "JP"}, api.adminToken)
	expectStatus(t, w, http.StatusOK)
	if got := decode[DeveloperResponse](t, w); got.Country != "JP" {
		t.Errorf("Expected updated country, got %q", got.Country)
	}

	w = api.do(t, http.MethodGet, "/developers/1", nil, "")
	expectStatus(t, w, http.StatusOK)

	w = api.do(t, http.MethodDelete, "/admin/developers/1", nil, api.adminToken)
	expectStatus(t, w, http.StatusOK)

	w = api.do(t, http.MethodGet, "/developers/1", nil, "")
	expectStatus(t, w, http.StatusNotFound)

	w = api.do(t, http.MethodGet, "/developers/abc", nil, "")
	expectStatus(t, w, http.StatusBadRequest)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	api := newTestAPI(t)
	userToken := api.userToken(t, "player@example.com")

	w := api.do(t, http.MethodPost, "/admin/games", GameInput{Title: "Tetris"}, "")
	expectStatus(t, w, http.StatusUnauthorized)

	w = api.do(t, http.MethodPost, "/admin/games", GameInput{Title: "Tetris"}, userToken)
	expectStatus(t, w, http.StatusForbidden)

	w = api.do(t, http.MethodPost, "/admin/games", GameInput{Title: "Tetris"}, api.adminToken)
	expectStatus(t, w, http.StatusCreated)
}

func TestGetGamesFiltersAndPaginates(t *testing.T) {
	api := newTestAPI(t)
	for _, g := range []GameInput{
		{Title: "Halo", Genre: "Shooter", Price: 20},
		{Title: "Halo 2", Genre: "Shooter", Price: 30},
		{Title: "Halo 3", Genre: "Shooter", Price: 40},
		{Title: "Zelda", Genre: "Adventure", Price: 60},
	} {
		expectStatus(t, api.do(t, http.MethodPost, "/admin/games", g, api.adminToken), http.StatusCreated)
	}

	w := api.do(t, http.MethodGet, "/games?q=halo&limit=2&page=2", nil, "")
	expectStatus(t, w, http.StatusOK)
	page := decode[PaginatedResponse[GameResponse]](t, w)
	if len(page.Data) != 1 || page.Data[0].Title != "Halo 3" {
		t.Errorf("Expected Halo 3 alone on page 2, got %+v", page.Data)
	}
	want := PaginationMeta{TotalItems: 3, TotalPages: 2, CurrentPage: 2, PageSize: 2}
	if page.Meta != want {
		t.Errorf("Expected meta %+v, got %+v", want, page.Meta)
	}

	w = api.do(t, http.MethodGet, "/games?page=100000000000000000&limit=100", nil, "")
	expectStatus(t, w, http.StatusOK)
	if got := decode[PaginatedResponse[GameResponse]](t, w); len(got.Data) != 0 || got.Meta.TotalItems != 4 {
		t.Errorf("Expected an empty page past the end, got %+v", got)
	}

	w = api.do(t, http.MethodGet, "/games?min_price=35&max_price=100", nil, "")
	expectStatus(t, w, http.StatusOK)
	if got := decode[PaginatedResponse[GameResponse]](t, w); got.Meta.TotalItems != 2 {
		t.Errorf("Expected 2 games in price range, got %d", got.Meta.TotalItems)
	}

	w = api.do(t, http.MethodGet, "/games?min_price=cheap", nil, "")
	expectStatus(t, w, http.StatusBadRequest)

	w = api.do(t, http.MethodGet, "/games/stats", nil, "")
	expectStatus(t, w, http.StatusOK)
	stats := decode[catalog.GameStats](t, w)
	if stats.Total != 4 || stats.ByGenre["Shooter"] != 3 || stats.AveragePrice != 37.5 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestIncludeDeletedRequiresAdmin(t *testing.T) {
	api := newTestAPI(t)
	expectStatus(t, api.do(t, http.MethodPost, "/admin/games", GameInput{Title: "Gone"}, api.adminToken), http.StatusCreated)
	expectStatus(t, api.do(t, http.MethodDelete, "/admin/games/1", nil, api.adminToken), http.StatusOK)
	userToken := api.userToken(t, "player@example.com")

	tests := []struct {
		name  string
		token string
		want  int64
	}{
		{name: "anonymous", token: "", want: 0},
		{name: "regular user", token: userToken, want: 0},
		{name: "admin", token: api.adminToken, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodGet, "/games?include_deleted=true", nil, tt.token)
			expectStatus(t, w, http.StatusOK)
			if got := decode[PaginatedResponse[GameResponse]](t, w); got.Meta.TotalItems != tt.want {
				t.Errorf("Expected %d games, got %d", tt.want, got.Meta.TotalItems)
			}
		})
	}
}

func TestCompatibilityAndCascade(t *testing.T) {
	api := newTestAPI(t)
	inactive := false

	expectStatus(t, api.do(t, http.MethodPost, "/admin/consoles", ConsoleInput{Name: "PlayStation 5"}, api.adminToken), http.StatusCreated)
	expectStatus(t, api.do(t, http.MethodPost, "/admin/consoles", ConsoleInput{Name: "Ouya", Active: &inactive}, api.adminToken), http.StatusCreated)
	expectStatus(t, api.do(t, http.MethodPost, "/admin/accessories", AccessoryInput{Name: "DualSense", ConsoleID: 1}, api.adminToken), http.StatusCreated)
	expectStatus(t, api.do(t, http.MethodPost, "/admin/accessories", AccessoryInput{Name: "Pulse 3D", ConsoleID: 1}, api.adminToken), http.StatusCreated)

	w := api.do(t, http.MethodPost, "/admin/accessories", AccessoryInput{Name: "Ouya Pad", ConsoleID: 2}, api.adminToken)
	expectStatus(t, w, http.StatusBadRequest)

	expectStatus(t, api.do(t, http.MethodPost, "/admin/games", GameInput{Title: "Astro Bot", Platforms: []string{"playstation 5", "PC"}}, api.adminToken), http.StatusCreated)

	w = api.do(t, http.MethodGet, "/games/1/compatibility", nil, "")
	expectStatus(t, w, http.StatusOK)
	compat := decode[CompatibilityResponse](t, w)
	if len(compat.Consoles) != 1 || len(compat.Consoles[0].Accessories) != 2 {
		t.Fatalf("Expected PlayStation 5 with 2 accessories, got %+v", compat.Consoles)
	}
	if len(compat.Unmatched) != 1 || compat.Unmatched[0] != "PC" {
		t.Errorf("Expected PC to be unmatched, got %v", compat.Unmatched)
	}

	w = api.do(t, http.MethodGet, "/consoles/1/games", nil, "")
	expectStatus(t, w, http.StatusOK)
	if got := decode[PaginatedResponse[GameResponse]](t, w); got.Meta.TotalItems != 1 {
		t.Errorf("Expected 1 game for the console, got %d", got.Meta.TotalItems)
	}

	w = api.do(t, http.MethodDelete, "/admin/consoles/1", nil, api.adminToken)
	expectStatus(t, w, http.StatusOK)
	if got := decode[ConsoleDeletedResponse](t, w); got.AccessoriesDeleted != 2 {
		t.Errorf("Expected 2 cascaded accessories, got %d", got.AccessoriesDeleted)
	}

	w = api.do(t, http.MethodGet, "/accessories", nil, "")
	expectStatus(t, w, http.StatusOK)
	if got := decode[PaginatedResponse[AccessoryResponse]](t, w); got.Meta.TotalItems != 0 {
		t.Errorf("Expected no live accessories, got %d", got.Meta.TotalItems)
	}
}

func multipartImage(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	part.Write(data)
	writer.Close()
	return body, writer.FormDataContentType()
}

func (a *testAPI) upload(t *testing.T, path, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartImage(t, filename, data)
	req := httptest.NewRequest(http.MethodPut, "/api/v1"+path, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+a.adminToken)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestImageUpload(t *testing.T) {
	api := newTestAPI(t)
	expectStatus(t, api.do(t, http.MethodPost, "/admin/games", GameInput{Title: "Celeste"}, api.adminToken), http.StatusCreated)

	w := api.upload(t, "/admin/games/1/image", "cover.png", pngHeader)
	expectStatus(t, w, http.StatusOK)
	game := decode[GameResponse](t, w)
	if !strings.HasPrefix(game.ImageURL, "/images/") || !strings.HasSuffix(game.ImageURL, ".png") {
		t.Fatalf("Unexpected image URL %q", game.ImageURL)
	}
	stored := filepath.Join(api.imageDir, strings.TrimPrefix(game.ImageURL, "/images/"))
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("Expected image on disk: %v", err)
	}

	w = api.upload(t, "/admin/games/1/image", "notes.png", []byte("plain text, not an image"))
	expectStatus(t, w, http.StatusBadRequest)

	w = api.upload(t, "/admin/games/1/image", "huge.png", append(pngHeader, make([]byte, testMaxImageBytes)...))
	expectStatus(t, w, http.StatusRequestEntityTooLarge)

	w = api.upload(t, "/admin/games/99/image", "cover.png", pngHeader)
	expectStatus(t, w, http.StatusNotFound)

	w = api.do(t, http.MethodDelete, "/admin/games/1/image", nil, api.adminToken)
	expectStatus(t, w, http.StatusOK)
	if got := decode[GameResponse](t, w); got.ImageURL != "" {
		t.Errorf("Expected image to be cleared, got %q", got.ImageURL)
	}
	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Errorf("Expected image file to be removed, got %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/games/1/image", nil)
	req.Header.Set("Authorization", "Bearer "+api.adminToken)
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestAuthEndpoints(t *testing.T) {
	api := newTestAPI(t)
	token := api.userToken(t, "ana@example.com")

	w := api.do(t, http.MethodPost, "/auth/register", RegisterInput{Name: "Copy", Email: "ANA@example.com", Password: "password123"}, "")
	expectStatus(t, w, http.StatusConflict)

	w = api.do(t, http.MethodPost, "/auth/register", RegisterInput{Name: "Short", Email: "s@example.com", Password: "short"}, "")
	expectStatus(t, w, http.StatusBadRequest)

	w = api.do(t, http.MethodPost, "/auth/login", LoginInput{Email: "ana@example.com", Password: "wrong-password"}, "")
	expectStatus(t, w, http.StatusUnauthorized)

	w = api.do(t, http.MethodPost, "/auth/login", LoginInput{Email: "ana@example.com", Password: "password123"}, "")
	expectStatus(t, w, http.StatusOK)
	if decode[TokenResponse](t, w).Token == "" {
		t.Error("Expected a token on login")
	}

	w = api.do(t, http.MethodGet, "/users/me", nil, token)
	expectStatus(t, w, http.StatusOK)
	me := decode[UserResponse](t, w)
	if me.Email != "ana@example.com" || me.Role != "user" {
		t.Errorf("Unexpected profile: %+v", me)
	}

	expectStatus(t, api.do(t, http.MethodGet, "/users/me", nil, ""), http.StatusUnauthorized)
}

func TestReviewEndpoints(t *testing.T) {
	api := newTestAPI(t)
	expectStatus(t, api.do(t, http.MethodPost, "/admin/games", GameInput{Title: "Portal 2"}, api.adminToken), http.StatusCreated)
	ana := api.userToken(t, "ana@example.com")
	bo := api.userToken(t, "bo@example.com")

	expectStatus(t, api.do(t, http.MethodPost, "/games/1/reviews", ReviewInput{Rating: 5}, ""), http.StatusUnauthorized)
	expectStatus(t, api.do(t, http.MethodPost, "/games/1/reviews", ReviewInput{Rating: 9}, ana), http.StatusBadRequest)

	w := api.do(t, http.MethodPost, "/games/1/reviews", ReviewInput{Rating: 5, Comment: "Brilliant"}, ana)
	expectStatus(t, w, http.StatusCreated)
	review := decode[ReviewResponse](t, w)

	expectStatus(t, api.do(t, http.MethodPost, "/games/1/reviews", ReviewInput{Rating: 4}, ana), http.StatusConflict)
	expectStatus(t, api.do(t, http.MethodPost, "/games/1/reviews", ReviewInput{Rating: 4}, bo), http.StatusCreated)
	expectStatus(t, api.do(t, http.MethodPost, "/games/2/reviews", ReviewInput{Rating: 4}, bo), http.StatusNotFound)

	w = api.do(t, http.MethodGet, "/games/1/reviews", nil, "")
	expectStatus(t, w, http.StatusOK)
	list := decode[GameReviewsResponse](t, w)
	if list.Meta.TotalItems != 2 || list.AverageRating != 4.5 {
		t.Errorf("Expected 2 reviews averaging 4.5, got %d / %v", list.Meta.TotalItems, list.AverageRating)
	}

	path := "/reviews/" + strconv.FormatUint(uint64(review.ID), 10)
	expectStatus(t, api.do(t, http.MethodDelete, path, nil, bo), http.StatusForbidden)
	expectStatus(t, api.do(t, http.MethodDelete, path, nil, api.adminToken), http.StatusOK)
	expectStatus(t, api.do(t, http.MethodDelete, path, nil, ana), http.StatusNotFound)
}
