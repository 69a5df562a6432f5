package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lexihub/internal/dto"
	"lexihub/internal/models"
	"lexihub/internal/repository"
	"lexihub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// stubAuthService accepts exactly one token string.
type stubAuthService struct {
	validToken string
	userID     string
}

func (s *stubAuthService) RequestCode(ctx context.Context, email string) (*dto.LoginResponse, error) {
	return nil, nil
}

func (s *stubAuthService) VerifyCode(ctx context.Context, email, code string) (*dto.TokenResponse, error) {
	return nil, nil
}

func (s *stubAuthService) ValidateToken(tokenString string) (string, error) {
	if tokenString == s.validToken {
		return s.userID, nil
	}
	return "", service.ErrInvalidToken
}

// stubUserRepo serves a single user by ID.
type stubUserRepo struct {
	user *models.User
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUserRepo) List(ctx context.Context, skip, limit int) ([]models.User, int64, error) {
	return nil, 0, nil
}
func (s *stubUserRepo) CreateVerificationCode(ctx context.Context, code *models.VerificationCode) error {
	return nil
}
func (s *stubUserRepo) NewestUsableCode(ctx context.Context, userID string, now time.Time) (*models.VerificationCode, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUserRepo) MarkCodeUsed(ctx context.Context, code *models.VerificationCode, usedAt time.Time) error {
	return nil
}
func (s *stubUserRepo) ActivitySummary(ctx context.Context, userID string) (*repository.UserActivity, error) {
	return nil, nil
}

func newTestRouter(role string) (*gin.Engine, *stubAuthService) {
	gin.SetMode(gin.TestMode)
	auth := &stubAuthService{validToken: "good-token", userID: "user-1"}
	repo := &stubUserRepo{user: &models.User{ID: "user-1", Role: role}}

	r := gin.New()
	r.GET("/protected", RequireAuth(auth, repo), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUser(c).ID})
	})
	r.GET("/admin", RequireAuth(auth, repo), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/elevated", RequireAuth(auth, repo), RequireElevated(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/optional", OptionalAuth(auth, repo), func(c *gin.Context) {
		if user := CurrentUser(c); user != nil {
			c.JSON(http.StatusOK, gin.H{"user_id": user.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": nil})
	})
	return r, auth
}

func doRequest(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	r, _ := newTestRouter(models.RoleContributor)
	w := doRequest(r, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Could not validate credentials")
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	r, _ := newTestRouter(models.RoleContributor)
	w := doRequest(r, "/protected", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_BadToken(t *testing.T) {
	r, _ := newTestRouter(models.RoleContributor)
	w := doRequest(r, "/protected", "Bearer bad-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	r, _ := newTestRouter(models.RoleContributor)
	w := doRequest(r, "/protected", "Bearer good-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestRequireAdmin_ContributorForbidden(t *testing.T) {
	r, _ := newTestRouter(models.RoleContributor)
	w := doRequest(r, "/admin", "Bearer good-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Not enough permissions")
}

func TestRequireAdmin_AdminAllowed(t *testing.T) {
	r, _ := newTestRouter(models.RoleAdmin)
	w := doRequest(r, "/admin", "Bearer good-token")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireElevated_VerifiedTranslatorAllowed(t *testing.T) {
	r, _ := newTestRouter(models.RoleVerifiedTranslator)
	w := doRequest(r, "/elevated", "Bearer good-token")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuth_AnonymousPasses(t *testing.T) {
	r, _ := newTestRouter(models.RoleContributor)
	w := doRequest(r, "/optional", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "null")
}

func TestOptionalAuth_BadTokenStillPasses(t *testing.T) {
	r, _ := newTestRouter(models.RoleContributor)
	w := doRequest(r, "/optional", "Bearer bad-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "null")
}
