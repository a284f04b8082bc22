// Package staffsvc - staff accounts: creation with per-role codes, credentials, targets.
package staffsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	basesvc "github.com/therebootai/rebootcrmbackend-sub000/internal/api/base/service"
	staffdto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/global"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/sequence"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/utility"
)

// UserService manages the users collection.
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
	allocators func(entity string) (sequence.Allocator, error)
}

// NewUserService creates the service over the registered users collection.
func NewUserService() (*UserService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %w", common.ErrNotFound)
	}
	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](collection),
		allocators:           sequence.For,
	}, nil
}

// HashPassword hashes a plain password with bcrypt.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches hash.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// RoleFilter scopes key (ObjectID or userCode) to role.
func RoleFilter(role, key string) bson.M {
	filter := basesvc.KeyFilter(sequence.UserCodeField, key)
	filter["role"] = role
	return filter
}

// Create stores a new account of role with a freshly allocated user code.
func (s *UserService) Create(ctx context.Context, role string, input *staffdto.UserCreateInput) (models.User, error) {
	if !models.IsRole(role) {
		return models.User{}, common.ErrInvalidInput
	}
	alloc, err := s.allocators(models.AllocatorEntity(role))
	if err != nil {
		return models.User{}, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Role:         role,
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		MobileNumber: strings.ReplaceAll(input.MobileNumber, " ", ""),
		Password:     hash,
		Designation:  input.Designation,
		Address:      input.Address,
		Cities:       toObjectIDs(input.Cities),
		Targets:      []models.Target{},
		Active:       true,
	}

	return sequence.Insert(ctx, alloc, func(ctx context.Context, code string) (models.User, error) {
		user.UserCode = code
		if key := sequence.CodeKey(code); key != code {
			user.CodeKey = key
		}
		return s.InsertOne(ctx, user)
	})
}

// Update applies the non-empty fields of input to the account.
func (s *UserService) Update(ctx context.Context, role, key string, input *staffdto.UserUpdateInput) (models.User, error) {
	set := bson.M{}
	if v := strings.TrimSpace(input.Name); v != "" {
		set["name"] = v
	}
	if v := strings.ToLower(strings.TrimSpace(input.Email)); v != "" {
		set["email"] = v
	}
	if v := strings.ReplaceAll(input.MobileNumber, " ", ""); v != "" {
		set["mobileNumber"] = v
	}
	if input.Designation != "" {
		set["designation"] = input.Designation
	}
	if input.Address != "" {
		set["address"] = input.Address
	}
	if input.Cities != nil {
		set["cities"] = toObjectIDs(input.Cities)
	}
	if input.Password != "" {
		hash, err := HashPassword(input.Password)
		if err != nil {
			return models.User{}, err
		}
		set["password"] = hash
	}
	if len(set) == 0 {
		return s.FindOne(ctx, RoleFilter(role, key), nil)
	}
	return s.UpdateOne(ctx, RoleFilter(role, key), &basesvc.UpdateData{Set: set})
}

// AddTarget appends a monthly target.
func (s *UserService) AddTarget(ctx context.Context, role, key string, input *staffdto.TargetInput) (models.User, error) {
	target := models.Target{
		Month:      input.Month,
		Amount:     input.Amount,
		Achieved:   input.Achieved,
		AssignedAt: time.Now(),
	}
	return s.UpdateOne(ctx, RoleFilter(role, key), &basesvc.UpdateData{
		Push: map[string]interface{}{"targets": target},
	})
}

// SetActive enables or disables the account.
func (s *UserService) SetActive(ctx context.Context, role, key string, active bool) (models.User, error) {
	return s.UpdateOne(ctx, RoleFilter(role, key), &basesvc.UpdateData{
		Set: map[string]interface{}{"active": active},
	})
}

// FindByCode resolves a user code to the account's ObjectID. found is false when no account
// carries the code.
func (s *UserService) FindByCode(ctx context.Context, code string) (primitive.ObjectID, bool, error) {
	user, err := s.FindOne(ctx, bson.M{sequence.UserCodeField: code}, nil)
	if errors.Is(err, common.ErrNotFound) {
		return primitive.NilObjectID, false, nil
	}
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	return user.ID, true, nil
}

// Authenticate checks identifier (email, mobile number or user code) and password.
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (models.User, error) {
	identifier = strings.TrimSpace(identifier)
	user, err := s.FindOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": strings.ToLower(identifier)},
		bson.M{"mobileNumber": strings.ReplaceAll(identifier, " ", "")},
		bson.M{sequence.UserCodeField: identifier},
	}}, nil)
	if errors.Is(err, common.ErrNotFound) {
		return models.User{}, common.ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if !CheckPassword(user.Password, password) {
		return models.User{}, common.ErrInvalidCredentials
	}
	if !user.Active {
		return models.User{}, common.ErrAccountInactive
	}

	now := time.Now()
	_, _ = s.UpdateById(ctx, user.ID, &basesvc.UpdateData{Set: map[string]interface{}{"lastLoginAt": now}})
	user.LastLoginAt = &now
	return user, nil
}

func toObjectIDs(ids []string) []primitive.ObjectID {
	if ids == nil {
		return nil
	}
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid := utility.String2ObjectID(id); !oid.IsZero() {
			out = append(out, oid)
		}
	}
	return out
}

// EnsureAdmin creates the first admin account when no admin exists yet. It does nothing
// when mobile or password is empty.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, mobile, password string) (bool, error) {
	if mobile == "" || password == "" {
		return false, nil
	}
	exists, err := s.DocumentExists(ctx, bson.M{"role": models.RoleAdmin})
	if err != nil || exists {
		return false, err
	}
	if name == "" {
		name = "Administrator"
	}
	_, err = s.Create(ctx, models.RoleAdmin, &staffdto.UserCreateInput{
		Name:         name,
		Email:        email,
		MobileNumber: mobile,
		Password:     password,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
