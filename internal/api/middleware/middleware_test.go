package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/auth/models"
	authsvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/auth/service"
	staffmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
)

const testSecret = "test-secret"

type fakeUsers struct {
	users map[primitive.ObjectID]staffmodels.User
	calls int
}

func (f *fakeUsers) FindOneById(_ context.Context, id primitive.ObjectID) (staffmodels.User, error) {
	f.calls++
	u, ok := f.users[id]
	if !ok {
		return staffmodels.User{}, common.ErrNotFound
	}
	return u, nil
}

func newTestApp(t *testing.T, users *fakeUsers) (*fiber.App, *AuthManager) {
	t.Helper()
	am := NewAuthManager(users, testSecret)
	t.Cleanup(am.Cache.Stop)

	app := fiber.New()
	group := app.Group("/secure")
	group.Use(am.Handler())
	group.Get("/whoami", func(c fiber.Ctx) error {
		id, role, code := CurrentUser(c)
		return c.JSON(fiber.Map{"id": id, "role": role, "code": code})
	})
	group.Get("/admin", RequireRoles(staffmodels.RoleAdmin)(func(c fiber.Ctx) error {
		return c.SendString("ok")
	}))
	return app, am
}

func tokenFor(t *testing.T, u staffmodels.User, ttl time.Duration) string {
	t.Helper()
	tok, err := authsvc.CreateToken(testSecret, authmodels.JwtToken{
		UserID: u.ID.Hex(), UserCode: u.UserCode, Role: u.Role,
	}, time.Now(), ttl)
	require.NoError(t, err)
	return tok
}

func get(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	admin := staffmodels.User{ID: primitive.NewObjectID(), UserCode: "adminId0001", Role: staffmodels.RoleAdmin, Active: true}
	bde := staffmodels.User{ID: primitive.NewObjectID(), UserCode: "bdeid0001-010120241200", Role: staffmodels.RoleBDE, Active: true}
	inactive := staffmodels.User{ID: primitive.NewObjectID(), UserCode: "employeeId0001", Role: staffmodels.RoleEmployee}
	users := &fakeUsers{users: map[primitive.ObjectID]staffmodels.User{
		admin.ID: admin, bde.ID: bde, inactive.ID: inactive,
	}}
	app, am := newTestApp(t, users)

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, 401, get(t, app, "/secure/whoami", ""))
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/secure/whoami", nil)
		req.Header.Set("Authorization", "Token abc")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, 401, get(t, app, "/secure/whoami", "not.a.jwt"))
	})

	t.Run("expired token", func(t *testing.T) {
		assert.Equal(t, 401, get(t, app, "/secure/whoami", tokenFor(t, admin, -time.Minute)))
	})

	t.Run("unknown user", func(t *testing.T) {
		ghost := staffmodels.User{ID: primitive.NewObjectID(), Role: staffmodels.RoleAdmin}
		assert.Equal(t, 401, get(t, app, "/secure/whoami", tokenFor(t, ghost, time.Hour)))
	})

	t.Run("inactive account", func(t *testing.T) {
		assert.Equal(t, 403, get(t, app, "/secure/whoami", tokenFor(t, inactive, time.Hour)))
	})

	t.Run("valid token caches the account", func(t *testing.T) {
		tok := tokenFor(t, admin, time.Hour)
		before := users.calls
		assert.Equal(t, 200, get(t, app, "/secure/whoami", tok))
		assert.Equal(t, 200, get(t, app, "/secure/whoami", tok))
		assert.Equal(t, before+1, users.calls)

		am.InvalidateUser(admin.ID.Hex())
		assert.Equal(t, 200, get(t, app, "/secure/whoami", tok))
		assert.Equal(t, before+2, users.calls)
	})

	t.Run("role check", func(t *testing.T) {
		assert.Equal(t, 200, get(t, app, "/secure/admin", tokenFor(t, admin, time.Hour)))
		assert.Equal(t, 403, get(t, app, "/secure/admin", tokenFor(t, bde, time.Hour)))
	})
}

func TestRequireRolesWithoutAuthentication(t *testing.T) {
	app := fiber.New()
	app.Get("/x", RequireRoles(staffmodels.RoleAdmin)(func(c fiber.Ctx) error {
		return c.SendString("ok")
	}))
	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
