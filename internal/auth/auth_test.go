package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jimitchavdadev/ecommerce-platform/internal/auth"
	"github.com/jimitchavdadev/ecommerce-platform/internal/models"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pw")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pw", hash)

	assert.True(t, auth.CheckPassword(hash, "s3cret-pw"))
	assert.False(t, auth.CheckPassword(hash, "wrong-pw"))
}

func TestTokenCarriesIdentityAndRole(t *testing.T) {
	svc := auth.NewService("test-jwt-secret", time.Hour)

	user := &models.User{ID: "user-1", Email: "jane@example.com", Role: models.RoleAdmin}
	token, err := svc.IssueToken(user)
	assert.NoError(t, err)

	ident, err := svc.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", ident.ID)
	assert.Equal(t, "jane@example.com", ident.Email)
	assert.Equal(t, models.RoleAdmin, ident.Role)
}

func TestParseTokenRejectsForgeries(t *testing.T) {
	svc := auth.NewService("test-jwt-secret", time.Hour)
	other := auth.NewService("other-secret", time.Hour)

	token, err := other.IssueToken(&models.User{ID: "user-1", Role: models.RoleCustomer})
	assert.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.ParseToken("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	svc := auth.NewService("test-jwt-secret", -time.Minute)

	token, err := svc.IssueToken(&models.User{ID: "user-1"})
	assert.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthorize(t *testing.T) {
	admin := auth.Identity{ID: "a", Role: models.RoleAdmin}
	customer := auth.Identity{ID: "c", Role: models.RoleCustomer}

	assert.NoError(t, auth.Authorize(admin, models.RoleAdmin))
	assert.ErrorIs(t, auth.Authorize(customer, models.RoleAdmin), auth.ErrForbidden)
}
