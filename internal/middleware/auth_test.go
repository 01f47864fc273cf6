package middleware_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/avishek100/metmanichaudhary/internal/auth"
	"github.com/avishek100/metmanichaudhary/internal/handlers"
	"github.com/avishek100/metmanichaudhary/internal/i18n"
	"github.com/avishek100/metmanichaudhary/internal/middleware"
	"github.com/avishek100/metmanichaudhary/internal/models"
	"github.com/avishek100/metmanichaudhary/internal/repository"
)

// gateUserRepo serves Authenticate's re-fetch; mutating a user here takes
// effect on the next request, which is exactly what the gate promises.
type gateUserRepo struct {
	users map[string]*models.User
}

func (r *gateUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *gateUserRepo) Create(context.Context, *models.User) error { return nil }
func (r *gateUserRepo) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, repository.ErrNotFound
}
func (r *gateUserRepo) FindByIDs(context.Context, []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	return nil, nil
}
func (r *gateUserRepo) List(context.Context, int, int) ([]models.User, int64, error) {
	return nil, 0, nil
}
func (r *gateUserRepo) Count(context.Context) (int64, error) { return 0, nil }
func (r *gateUserRepo) SetLastLogin(context.Context, primitive.ObjectID, time.Time) error {
	return nil
}
func (r *gateUserRepo) SetRole(context.Context, string, models.Role) (*models.User, error) {
	return nil, repository.ErrNotFound
}
func (r *gateUserRepo) ToggleActive(context.Context, string) (*models.User, error) {
	return nil, repository.ErrNotFound
}
func (r *gateUserRepo) Delete(context.Context, string) error { return nil }

type gateFixture struct {
	app    *fiber.App
	jwt    *auth.JWTManager
	repo   *gateUserRepo
	admin  *models.User
	editor *models.User
	viewer *models.User
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()

	catalog, err := i18n.Load()
	require.NoError(t, err)

	jwtMgr := auth.NewJWTManager("gate-test-secret", time.Hour)
	repo := &gateUserRepo{users: map[string]*models.User{}}
	addUser := func(role models.Role) *models.User {
		u := &models.User{ID: primitive.NewObjectID(), Name: string(role), Email: string(role) + "@example.com", Role: role, IsActive: true}
		repo.users[u.ID.Hex()] = u
		return u
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.NewErrorHandler(catalog, zap.NewNop(), false),
	})
	gate := middleware.Authenticate(jwtMgr, repo)
	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user": middleware.CurrentUser(c).Email})
	}
	app.Get("/me", gate, ok)
	app.Post("/content", gate, middleware.RequireEditor(), ok)
	app.Get("/admin", gate, middleware.RequireAdmin(), ok)

	return &gateFixture{
		app:    app,
		jwt:    jwtMgr,
		repo:   repo,
		admin:  addUser(models.RoleAdmin),
		editor: addUser(models.RoleEditor),
		viewer: addUser(models.RoleUser),
	}
}

func (f *gateFixture) request(t *testing.T, method, path, token string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (f *gateFixture) tokenFor(t *testing.T, u *models.User) string {
	t.Helper()
	token, _, err := f.jwt.Generate(u.ID.Hex(), u.Role)
	require.NoError(t, err)
	return token
}

func TestGateRejectsAnonymous(t *testing.T) {
	f := newGateFixture(t)

	resp, body := f.request(t, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "No token provided")
}

func TestGateRejectsGarbageToken(t *testing.T) {
	f := newGateFixture(t)

	resp, _ := f.request(t, http.MethodGet, "/me", "not.a.token")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGateRejectsExpiredToken(t *testing.T) {
	f := newGateFixture(t)
	expired := auth.NewJWTManager("gate-test-secret", -time.Minute)
	token, _, err := expired.Generate(f.editor.ID.Hex(), f.editor.Role)
	require.NoError(t, err)

	resp, body := f.request(t, http.MethodGet, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "expired")
}

func TestGateRejectsDeletedAccount(t *testing.T) {
	f := newGateFixture(t)
	token := f.tokenFor(t, f.editor)
	delete(f.repo.users, f.editor.ID.Hex())

	resp, _ := f.request(t, http.MethodGet, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGateRejectsDisabledAccount(t *testing.T) {
	f := newGateFixture(t)
	token := f.tokenFor(t, f.editor)

	// the token is still cryptographically valid, the account is not
	f.repo.users[f.editor.ID.Hex()].IsActive = false

	resp, _ := f.request(t, http.MethodGet, "/me", token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGateUsesFreshRoleNotTokenRole(t *testing.T) {
	f := newGateFixture(t)
	token := f.tokenFor(t, f.editor)

	resp, _ := f.request(t, http.MethodPost, "/content", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// demote after the token was issued: the old token must stop working
	// for editor routes immediately
	f.repo.users[f.editor.ID.Hex()].Role = models.RoleUser

	resp, body := f.request(t, http.MethodPost, "/content", token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "Editor or Admin access required")
}

func TestGateRoleMatrix(t *testing.T) {
	f := newGateFixture(t)

	tests := []struct {
		name   string
		user   *models.User
		method string
		path   string
		status int
	}{
		{"viewer reads own profile", f.viewer, http.MethodGet, "/me", http.StatusOK},
		{"viewer blocked from content", f.viewer, http.MethodPost, "/content", http.StatusForbidden},
		{"viewer blocked from admin", f.viewer, http.MethodGet, "/admin", http.StatusForbidden},
		{"editor manages content", f.editor, http.MethodPost, "/content", http.StatusOK},
		{"editor blocked from admin", f.editor, http.MethodGet, "/admin", http.StatusForbidden},
		{"admin manages content", f.admin, http.MethodPost, "/content", http.StatusOK},
		{"admin reaches admin routes", f.admin, http.MethodGet, "/admin", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := f.request(t, tt.method, tt.path, f.tokenFor(t, tt.user))
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestGateLocalizedError(t *testing.T) {
	f := newGateFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAcceptLanguage, "hi")
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var payload struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.NotEqual(t, "No token provided", payload.Message, "hindi clients get the translated message")
	assert.NotEmpty(t, payload.Message)
}
