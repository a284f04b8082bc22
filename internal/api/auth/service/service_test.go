package authsvc

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "github.com/therebootai/rebootcrmbackend-sub000/internal/api/auth/dto"
	models "github.com/therebootai/rebootcrmbackend-sub000/internal/api/auth/models"
	staffmodels "github.com/therebootai/rebootcrmbackend-sub000/internal/api/staff/models"
	"github.com/therebootai/rebootcrmbackend-sub000/internal/common"
)

func TestCreateAndParseToken(t *testing.T) {
	now := time.Now()
	tok, err := CreateToken("s3cret", models.JwtToken{UserID: "u1", UserCode: "adminId0001", Role: "admin"}, now, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(tok, ".")))

	claims, err := ParseToken("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "adminId0001", claims.UserCode)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "u1", claims.Subject)
	assert.NotEmpty(t, claims.Id)
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt)
}

func TestParseTokenErrors(t *testing.T) {
	tok, err := CreateToken("s3cret", models.JwtToken{UserID: "u1"}, time.Now(), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other", tok)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)

	_, err = ParseToken("s3cret", "garbage")
	assert.ErrorIs(t, err, common.ErrTokenInvalid)

	expired, err := CreateToken("s3cret", models.JwtToken{UserID: "u1"}, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	_, err = ParseToken("s3cret", expired)
	assert.ErrorIs(t, err, common.ErrTokenExpired)

	noUser, err := CreateToken("s3cret", models.JwtToken{}, time.Now(), time.Hour)
	require.NoError(t, err)
	_, err = ParseToken("s3cret", noUser)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestCreateTokenNeedsSecret(t *testing.T) {
	_, err := CreateToken("", models.JwtToken{UserID: "u1"}, time.Now(), time.Hour)
	assert.Error(t, err)
}

type fakeAuthenticator struct {
	user staffmodels.User
	err  error
}

func (f fakeAuthenticator) Authenticate(context.Context, string, string) (staffmodels.User, error) {
	return f.user, f.err
}

func TestLogin(t *testing.T) {
	user := staffmodels.User{ID: primitive.NewObjectID(), UserCode: "telecallerId0003", Role: staffmodels.RoleTelecaller, Active: true}
	svc := NewAuthServiceWith(fakeAuthenticator{user: user}, "s3cret", 2*time.Hour)
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	res, err := svc.Login(context.Background(), &authdto.LoginInput{Identifier: "x", Password: "y"})
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(2*time.Hour).Unix(), res.ExpiresAt)

	assert.NotEmpty(t, res.Token)

	_, err = NewAuthServiceWith(fakeAuthenticator{err: common.ErrInvalidCredentials}, "s3cret", time.Hour).
		Login(context.Background(), &authdto.LoginInput{Identifier: "x", Password: "bad"})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLoginTokenCarriesRole(t *testing.T) {
	user := staffmodels.User{ID: primitive.NewObjectID(), UserCode: "bdeid0002-010320261000", Role: staffmodels.RoleBDE, Active: true}
	svc := NewAuthServiceWith(fakeAuthenticator{user: user}, "s3cret", time.Hour)

	res, err := svc.Login(context.Background(), &authdto.LoginInput{Identifier: "x", Password: "y"})
	require.NoError(t, err)

	claims, err := ParseToken("s3cret", res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, staffmodels.RoleBDE, claims.Role)
	assert.Equal(t, user, res.User)
}
