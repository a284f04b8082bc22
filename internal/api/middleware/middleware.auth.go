package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authsvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/auth/service"
	staffmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
	staffsvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/service"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/logger"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

// Locals keys set for authenticated requests
const (
	LocalUserID   = "user_id"
	LocalRole     = "role"
	LocalUserCode = "user_code"
)

// UserLookup loads the account named by a token.
type UserLookup interface {
	FindOneById(ctx context.Context, id primitive.ObjectID) (staffmodels.User, error)
}

// AuthManager verifies access tokens and caches the accounts they name.
type AuthManager struct {
	Users  UserLookup
	Secret string
	Cache  *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager returns the process-wide AuthManager.
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

func newAuthManager() (*AuthManager, error) {
	userService, err := staffsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	if global.MongoDB_ServerConfig == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return NewAuthManager(userService, global.MongoDB_ServerConfig.JwtSecret), nil
}

// NewAuthManager creates a manager whose account cache lives 5 minutes.
func NewAuthManager(users UserLookup, secret string) *AuthManager {
	return &AuthManager{
		Users:  users,
		Secret: secret,
		Cache:  utility.NewCache(5*time.Minute, 10*time.Minute),
	}
}

func userCacheKey(id string) string {
	return "user:" + id
}

// InvalidateUser drops the cached account so the next request reloads it.
func (am *AuthManager) InvalidateUser(id string) {
	am.Cache.Delete(userCacheKey(id))
}

func (am *AuthManager) loadUser(ctx context.Context, id string) (staffmodels.User, error) {
	if cached, found := am.Cache.Get(userCacheKey(id)); found {
		return cached.(staffmodels.User), nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return staffmodels.User{}, common.ErrTokenInvalid
	}
	user, err := am.Users.FindOneById(ctx, oid)
	if err != nil {
		return staffmodels.User{}, err
	}
	am.Cache.Set(userCacheKey(id), user)
	return user, nil
}

// Handler authenticates the bearer token and stores the account's id, role and user code
// in Locals.
func (am *AuthManager) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		claims, err := authsvc.ParseToken(am.Secret, parts[1])
		if err != nil {
			HandleErrorResponse(c, err)
			return nil
		}

		user, err := am.loadUser(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				err = common.ErrTokenInvalid
			}
			HandleErrorResponse(c, err)
			return nil
		}
		if !user.Active {
			HandleErrorResponse(c, common.ErrAccountInactive)
			return nil
		}

		c.Locals(LocalUserID, user.ID.Hex())
		c.Locals(LocalRole, user.Role)
		c.Locals(LocalUserCode, user.UserCode)
		return c.Next()
	}
}

// AuthMiddleware authenticates with the process-wide AuthManager.
func AuthMiddleware() fiber.Handler {
	return GetAuthManager().Handler()
}

// RequireRoles wraps handler so that only the listed roles reach it. It expects the
// authentication middleware to have run.
func RequireRoles(roles ...string) func(fiber.Handler) fiber.Handler {
	return func(handler fiber.Handler) fiber.Handler {
		return func(c fiber.Ctx) error {
			role, _ := c.Locals(LocalRole).(string)
			if role == "" {
				HandleErrorResponse(c, common.ErrTokenMissing)
				return nil
			}
			if !utility.Contains(roles, role) {
				logger.WithRequest(c).WithField("role", role).Warn("Role not allowed")
				HandleErrorResponse(c, common.ErrForbiddenRole)
				return nil
			}
			return handler(c)
		}
	}
}

// CurrentUser returns the id, role and user code stored by the authentication middleware.
func CurrentUser(c fiber.Ctx) (id, role, code string) {
	id, _ = c.Locals(LocalUserID).(string)
	role, _ = c.Locals(LocalRole).(string)
	code, _ = c.Locals(LocalUserCode).(string)
	return id, role, code
}
