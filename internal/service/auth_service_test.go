package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"lexihub/internal/config"
	"lexihub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		Environment:         "development",
		JWTSecret:           "test-secret-key-that-is-long-enough-123",
		AccessTokenTTL:      time.Hour,
		VerificationCodeTTL: 15 * time.Minute,
		LoginRatePerMinute:  60,
		LoginBurst:          10,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequestCode_CreatesUserAndReturnsDevCode(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)

	mockRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	mockRepo.On("CreateVerificationCode", mock.Anything, mock.AnythingOfType("*models.VerificationCode")).Return(nil)
	mockMailer.On("SendVerificationCode", "new@example.com", "123456").Return(nil)

	svc := NewAuthService(mockRepo, mockMailer, testAuthConfig(), testLogger())

	resp, err := svc.RequestCode(context.Background(), "new@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, resp.DevCode)
	assert.Equal(t, "123456", *resp.DevCode)
	mockRepo.AssertExpectations(t)
	mockMailer.AssertExpectations(t)
}

func TestRequestCode_MailFailureDoesNotBlockIssuance(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)

	user := &models.User{ID: "user-1", Email: "known@example.com"}
	mockRepo.On("GetByEmail", mock.Anything, "known@example.com").Return(user, nil)
	mockRepo.On("CreateVerificationCode", mock.Anything, mock.AnythingOfType("*models.VerificationCode")).Return(nil)
	mockMailer.On("SendVerificationCode", "known@example.com", "123456").Return(errors.New("smtp down"))

	svc := NewAuthService(mockRepo, mockMailer, testAuthConfig(), testLogger())

	resp, err := svc.RequestCode(context.Background(), "known@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "Verification code sent", resp.Message)
	mockRepo.AssertExpectations(t)
}

func TestRequestCode_StoresHashedCode(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)

	user := &models.User{ID: "user-1", Email: "a@example.com"}
	mockRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(user, nil)

	var stored *models.VerificationCode
	mockRepo.On("CreateVerificationCode", mock.Anything, mock.AnythingOfType("*models.VerificationCode")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.VerificationCode)
		}).Return(nil)
	mockMailer.On("SendVerificationCode", mock.Anything, mock.Anything).Return(nil)

	svc := NewAuthService(mockRepo, mockMailer, testAuthConfig(), testLogger())

	_, err := svc.RequestCode(context.Background(), "a@example.com")

	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.NotEqual(t, "123456", stored.CodeHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.CodeHash), []byte("123456")))
	assert.True(t, stored.ExpiresAt.After(time.Now()))
}

func TestRequestCode_RateLimited(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)

	user := &models.User{ID: "user-1", Email: "busy@example.com"}
	mockRepo.On("GetByEmail", mock.Anything, "busy@example.com").Return(user, nil)
	mockRepo.On("CreateVerificationCode", mock.Anything, mock.Anything).Return(nil)
	mockMailer.On("SendVerificationCode", mock.Anything, mock.Anything).Return(nil)

	cfg := testAuthConfig()
	cfg.LoginRatePerMinute = 1
	cfg.LoginBurst = 1
	svc := NewAuthService(mockRepo, mockMailer, cfg, testLogger())

	_, err := svc.RequestCode(context.Background(), "busy@example.com")
	assert.NoError(t, err)

	_, err = svc.RequestCode(context.Background(), "busy@example.com")
	assert.ErrorIs(t, err, ErrTooManyLoginRequests)
}

func TestVerifyCode_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)

	hash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-1", Email: "a@example.com", IsActivated: false}
	code := &models.VerificationCode{
		ID:        "code-1",
		UserID:    "user-1",
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}

	mockRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(user, nil)
	mockRepo.On("NewestUsableCode", mock.Anything, "user-1", mock.AnythingOfType("time.Time")).Return(code, nil)
	mockRepo.On("MarkCodeUsed", mock.Anything, code, mock.AnythingOfType("time.Time")).Return(nil)
	mockRepo.On("Update", mock.Anything, user).Return(nil)

	svc := NewAuthService(mockRepo, mockMailer, testAuthConfig(), testLogger())

	resp, err := svc.VerifyCode(context.Background(), "a@example.com", "123456")

	assert.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.True(t, user.IsActivated)

	// The issued token must round-trip back to the same user.
	userID, err := svc.ValidateToken(resp.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	mockRepo.AssertExpectations(t)
}

func TestVerifyCode_WrongCode(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)

	hash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-1", Email: "a@example.com"}
	code := &models.VerificationCode{
		UserID:    "user-1",
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}

	mockRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(user, nil)
	mockRepo.On("NewestUsableCode", mock.Anything, "user-1", mock.AnythingOfType("time.Time")).Return(code, nil)

	svc := NewAuthService(mockRepo, mockMailer, testAuthConfig(), testLogger())

	_, err := svc.VerifyCode(context.Background(), "a@example.com", "654321")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestVerifyCode_NoUsableCode(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)

	user := &models.User{ID: "user-1", Email: "a@example.com"}
	mockRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(user, nil)
	mockRepo.On("NewestUsableCode", mock.Anything, "user-1", mock.AnythingOfType("time.Time")).
		Return(nil, gorm.ErrRecordNotFound)

	svc := NewAuthService(mockRepo, mockMailer, testAuthConfig(), testLogger())

	_, err := svc.VerifyCode(context.Background(), "a@example.com", "123456")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestVerifyCode_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)

	mockRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	svc := NewAuthService(mockRepo, mockMailer, testAuthConfig(), testLogger())

	_, err := svc.VerifyCode(context.Background(), "ghost@example.com", "123456")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), new(MockMailer), testAuthConfig(), testLogger())

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	cfg := testAuthConfig()
	svcA := NewAuthService(new(MockUserRepository), new(MockMailer), cfg, testLogger())

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "another-secret-key-that-is-long-enough"
	svcB := NewAuthService(new(MockUserRepository), new(MockMailer), otherCfg, testLogger())

	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	hash, _ := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-1", Email: "a@example.com", IsActivated: true}
	code := &models.VerificationCode{UserID: "user-1", CodeHash: string(hash), ExpiresAt: time.Now().Add(time.Minute)}
	mockRepo.On("GetByEmail", mock.Anything, "a@example.com").Return(user, nil)
	mockRepo.On("NewestUsableCode", mock.Anything, "user-1", mock.AnythingOfType("time.Time")).Return(code, nil)
	mockRepo.On("MarkCodeUsed", mock.Anything, code, mock.AnythingOfType("time.Time")).Return(nil)
	issuer := NewAuthService(mockRepo, mockMailer, cfg, testLogger())

	resp, err := issuer.VerifyCode(context.Background(), "a@example.com", "123456")
	assert.NoError(t, err)

	_, err = svcA.ValidateToken(resp.AccessToken)
	assert.NoError(t, err)

	_, err = svcB.ValidateToken(resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
