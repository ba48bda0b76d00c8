package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/lendmarket/models"
	"github.com/yourusername/lendmarket/repositories"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Operation{}, &models.Bid{}))
	return db
}

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	tokens := NewTokenService("test-secret", 30*time.Minute)
	return NewAuthService(repositories.NewUserRepository(db), tokens), db
}

func registerRequest(email string, role models.Role) RegisterRequest {
	return RegisterRequest{
		FirstName: "Ana",
		LastName:  "Garcia",
		Nickname:  "ana",
		Email:     email,
		Phone:     "+34 600000000",
		Password:  "s3cret",
		Role:      role,
		Country:   "Spain",
		State:     "Madrid",
		City:      "Madrid",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	auth, _ := newAuthService(t)

	user, err := auth.Register(registerRequest("ana@example.com", models.RoleInvestor))
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.RoleInvestor, user.Role)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	token, loggedIn, err := auth.Login("ana@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	// the token resolves back to the registered role, via the live re-fetch
	resolved, err := auth.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleInvestor, resolved.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth, db := newAuthService(t)

	_, err := auth.Register(registerRequest("ana@example.com", models.RoleInvestor))
	require.NoError(t, err)

	_, err = auth.Register(registerRequest("ana@example.com", models.RoleOperator))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	var count int64
	db.Model(&models.User{}).Where("email = ?", "ana@example.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	auth, _ := newAuthService(t)

	tests := []models.Role{"admin", "investor", "Superuser", ""}
	for _, role := range tests {
		t.Run(string(role), func(t *testing.T) {
			_, err := auth.Register(registerRequest("x@example.com", role))
			assert.ErrorIs(t, err, ErrInvalidRole)
		})
	}
}

func TestLoginUniformFailure(t *testing.T) {
	auth, _ := newAuthService(t)

	_, err := auth.Register(registerRequest("ana@example.com", models.RoleInvestor))
	require.NoError(t, err)

	_, _, errUnknown := auth.Login("nobody@example.com", "s3cret")
	_, _, errWrongPw := auth.Login("ana@example.com", "wrong")

	// the error never reveals whether the email exists
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
}

func TestAuthenticateAfterUserDeleted(t *testing.T) {
	auth, _ := newAuthService(t)

	user, err := auth.Register(registerRequest("ana@example.com", models.RoleInvestor))
	require.NoError(t, err)

	token, _, err := auth.Login("ana@example.com", "s3cret")
	require.NoError(t, err)

	require.NoError(t, auth.DeleteUser(user.ID))

	// still-unexpired token, but the account is gone
	_, err = auth.Authenticate(token)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthenticateTokenFailures(t *testing.T) {
	auth, _ := newAuthService(t)

	_, err := auth.Authenticate("")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = auth.Authenticate("garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestDeleteUserRestrictedWhileReferenced(t *testing.T) {
	auth, db := newAuthService(t)

	operator, err := auth.Register(registerRequest("op@example.com", models.RoleOperator))
	require.NoError(t, err)

	ledger := NewLedgerService(repositories.NewOperationRepository(db), repositories.NewBidRepository(db))
	_, err = ledger.CreateOperation(operator.ID, mustDecimal(t, "5000.00"), mustDecimal(t, "10.00"), time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)

	err = auth.DeleteUser(operator.ID)
	assert.ErrorIs(t, err, ErrUserReferenced)

	// still there
	_, err = auth.GetUser(operator.ID)
	assert.NoError(t, err)
}

func TestDeleteUserNotFound(t *testing.T) {
	auth, _ := newAuthService(t)
	assert.ErrorIs(t, auth.DeleteUser("missing-id"), ErrUserNotFound)
}
