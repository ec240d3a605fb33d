package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"reviewhub/internal/config"
	"reviewhub/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret-long-enough-for-validation",
		AccessTokenTTL: 15 * time.Minute,
	}
}

func TestSignUp_NewUser(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	sender := &recordingSender{}
	authService := NewAuthService(mockUserRepo, sender, stubLimiter{allow: true}, testAuthConfig(), testLogger())

	mockUserRepo.On("FindByUsername", "reader").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", "reader@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := authService.SignUp(context.Background(), "reader", "reader@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "reader", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)

	// The dispatched code must verify against the stored hash.
	assert.Len(t, sender.sent, 1)
	assert.Equal(t, "reader@example.com", sender.sent[0].to)
	code := sender.sent[0].body
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.CodeHash), []byte(code)))
	mockUserRepo.AssertExpectations(t)
}

func TestSignUp_ResendSamePair(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	sender := &recordingSender{}
	authService := NewAuthService(mockUserRepo, sender, stubLimiter{allow: true}, testAuthConfig(), testLogger())

	existing := &models.User{
		ID:       "user-id",
		Username: "reader",
		Email:    "reader@example.com",
		CodeHash: "old-hash",
	}
	mockUserRepo.On("FindByUsername", "reader").Return(existing, nil)
	mockUserRepo.On("Save", existing).Return(nil)

	user, err := authService.SignUp(context.Background(), "reader", "reader@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotEqual(t, "old-hash", user.CodeHash)
	assert.Len(t, sender.sent, 1)
	mockUserRepo.AssertExpectations(t)
}

func TestSignUp_ResendThrottled(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	sender := &recordingSender{}
	authService := NewAuthService(mockUserRepo, sender, stubLimiter{allow: false}, testAuthConfig(), testLogger())

	existing := &models.User{
		ID:       "user-id",
		Username: "reader",
		Email:    "reader@example.com",
		CodeHash: "old-hash",
	}
	mockUserRepo.On("FindByUsername", "reader").Return(existing, nil)

	user, err := authService.SignUp(context.Background(), "reader", "reader@example.com")

	// Still succeeds, but the stored code is untouched and nothing is sent.
	assert.NoError(t, err)
	assert.Equal(t, "old-hash", user.CodeHash)
	assert.Empty(t, sender.sent)
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestSignUp_UsernameTakenByOtherEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, &recordingSender{}, stubLimiter{allow: true}, testAuthConfig(), testLogger())

	existing := &models.User{Username: "reader", Email: "someone-else@example.com"}
	mockUserRepo.On("FindByUsername", "reader").Return(existing, nil)

	user, err := authService.SignUp(context.Background(), "reader", "reader@example.com")

	assert.ErrorIs(t, err, ErrUsernameEmailMismatch)
	assert.Nil(t, user)
}

func TestSignUp_EmailTakenByOtherUsername(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, &recordingSender{}, stubLimiter{allow: true}, testAuthConfig(), testLogger())

	existing := &models.User{Username: "other", Email: "reader@example.com"}
	mockUserRepo.On("FindByUsername", "reader").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByEmail", "reader@example.com").Return(existing, nil)

	user, err := authService.SignUp(context.Background(), "reader", "reader@example.com")

	assert.ErrorIs(t, err, ErrUsernameEmailMismatch)
	assert.Nil(t, user)
}

func TestSignUp_ReservedUsername(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, &recordingSender{}, stubLimiter{allow: true}, testAuthConfig(), testLogger())

	user, err := authService.SignUp(context.Background(), "me", "me@example.com")

	assert.ErrorIs(t, err, ErrReservedUsername)
	assert.Nil(t, user)
	mockUserRepo.AssertNotCalled(t, "FindByUsername", mock.Anything)
}

func TestSignUp_InvalidUsername(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, &recordingSender{}, stubLimiter{allow: true}, testAuthConfig(), testLogger())

	user, err := authService.SignUp(context.Background(), "bad name!", "reader@example.com")

	assert.ErrorIs(t, err, ErrInvalidUsername)
	assert.Nil(t, user)
}

func TestSignUp_CreateRace_SamePairResends(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	sender := &recordingSender{}
	authService := NewAuthService(mockUserRepo, sender, stubLimiter{allow: true}, testAuthConfig(), testLogger())

	winner := &models.User{ID: "user-id", Username: "reader", Email: "reader@example.com"}
	mockUserRepo.On("FindByUsername", "reader").Return(nil, gorm.ErrRecordNotFound).Once()
	mockUserRepo.On("FindByEmail", "reader@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Return(uniqueViolation())
	mockUserRepo.On("FindByUsername", "reader").Return(winner, nil).Once()
	mockUserRepo.On("Save", winner).Return(nil)

	user, err := authService.SignUp(context.Background(), "reader", "reader@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "reader", user.Username)
	assert.Len(t, sender.sent, 1)
	mockUserRepo.AssertExpectations(t)
}

func TestIssueToken_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, &recordingSender{}, stubLimiter{allow: true}, testAuthConfig(), testLogger())

	hash, _ := bcrypt.GenerateFromPassword([]byte("the-code"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-id",
		Username: "reader",
		CodeHash: string(hash),
	}
	mockUserRepo.On("FindByUsername", "reader").Return(user, nil)

	token, err := authService.IssueToken(context.Background(), "reader", "the-code")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// The token must validate and carry the subject back.
	userID, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-id", userID)
}

func TestIssueToken_BadCode(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, &recordingSender{}, stubLimiter{allow: true}, testAuthConfig(), testLogger())

	hash, _ := bcrypt.GenerateFromPassword([]byte("the-code"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-id", Username: "reader", CodeHash: string(hash)}
	mockUserRepo.On("FindByUsername", "reader").Return(user, nil)

	token, err := authService.IssueToken(context.Background(), "reader", "wrong-code")

	assert.ErrorIs(t, err, ErrBadCode)
	assert.Empty(t, token)
}

func TestIssueToken_UnknownUser(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, &recordingSender{}, stubLimiter{allow: true}, testAuthConfig(), testLogger())

	mockUserRepo.On("FindByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)

	token, err := authService.IssueToken(context.Background(), "ghost", "any-code")

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, token)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	authService := NewAuthService(mockUserRepo, &recordingSender{}, stubLimiter{allow: true}, testAuthConfig(), testLogger())

	otherCfg := &config.Config{
		JWTSecret:      "a-completely-different-secret-value",
		AccessTokenTTL: 15 * time.Minute,
	}
	otherService := NewAuthService(mockUserRepo, &recordingSender{}, stubLimiter{allow: true}, otherCfg, testLogger())

	hash, _ := bcrypt.GenerateFromPassword([]byte("the-code"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-id", Username: "reader", CodeHash: string(hash)}
	mockUserRepo.On("FindByUsername", "reader").Return(user, nil)

	token, err := otherService.IssueToken(context.Background(), "reader", "the-code")
	assert.NoError(t, err)

	userID, err := authService.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, userID)
}

func TestValidateToken_Garbage(t *testing.T) {
	authService := NewAuthService(new(MockUserRepository), &recordingSender{}, stubLimiter{allow: true}, testAuthConfig(), testLogger())

	userID, err := authService.ValidateToken("not.a.token")

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, userID)
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		username string
		wantErr  error
	}{
		{"reader", nil},
		{"reader.name+tag@host-1_x", nil},
		{"me", ErrReservedUsername},
		{"has space", ErrInvalidUsername},
		{"", ErrInvalidUsername},
	}

	for _, tt := range tests {
		err := ValidateUsername(tt.username)
		if tt.wantErr == nil {
			assert.NoError(t, err, tt.username)
		} else {
			assert.ErrorIs(t, err, tt.wantErr, tt.username)
		}
	}
}
