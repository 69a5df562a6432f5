package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"lexihub/internal/config"
	"lexihub/internal/dto"
	"lexihub/internal/models"
	"lexihub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

const devVerificationCode = "123456"

type AuthService interface {
	RequestCode(ctx context.Context, email string) (*dto.LoginResponse, error)
	VerifyCode(ctx context.Context, email, code string) (*dto.TokenResponse, error)
	ValidateToken(tokenString string) (userID string, err error)
}

type authService struct {
	userRepo repository.UserRepository
	mailer   Mailer
	logger   *slog.Logger

	jwtSecret      string
	accessTokenTTL time.Duration
	codeTTL        time.Duration
	devMode        bool

	limiterMu sync.Mutex
	limiters  map[string]*rate.Limiter
	loginRate rate.Limit
	burst     int
}

func NewAuthService(userRepo repository.UserRepository, mailer Mailer, cfg *config.Config, logger *slog.Logger) AuthService {
	return &authService{
		userRepo:       userRepo,
		mailer:         mailer,
		logger:         logger,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
		codeTTL:        cfg.VerificationCodeTTL,
		devMode:        cfg.IsDevelopment(),
		limiters:       make(map[string]*rate.Limiter),
		loginRate:      rate.Every(time.Minute / time.Duration(max(cfg.LoginRatePerMinute, 1))),
		burst:          max(cfg.LoginBurst, 1),
	}
}

// RequestCode finds or creates the account for the email and issues a
// single-use six-digit code. In development mode the code is fixed and echoed
// back so the frontend can log in without a mail relay.
func (s *authService) RequestCode(ctx context.Context, email string) (*dto.LoginResponse, error) {
	if !s.allowLogin(email) {
		return nil, ErrTooManyLoginRequests
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if repository.IsNotFound(err) {
		user = &models.User{Email: email}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	code := devVerificationCode
	if !s.devMode {
		code, err = randomCode()
		if err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash verification code: %w", err)
	}

	vc := &models.VerificationCode{
		UserID:    user.ID,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(s.codeTTL),
	}
	if err := s.userRepo.CreateVerificationCode(ctx, vc); err != nil {
		return nil, err
	}

	// Mail failure must not block issuance; the code is still redeemable.
	if err := s.mailer.SendVerificationCode(email, code); err != nil {
		s.logger.Warn("verification mail not delivered", "email", email, "error", err)
	}

	resp := &dto.LoginResponse{Message: "Verification code sent"}
	if s.devMode {
		resp.DevCode = &code
	}
	return resp, nil
}

// VerifyCode redeems the newest unused unexpired code for the email. Every
// failure path collapses into the same error so callers cannot probe which
// part was wrong.
func (s *authService) VerifyCode(ctx context.Context, email, code string) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}

	vc, err := s.userRepo.NewestUsableCode(ctx, user.ID, time.Now())
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(vc.CodeHash), []byte(code)) != nil {
		return nil, ErrInvalidCode
	}

	if err := s.userRepo.MarkCodeUsed(ctx, vc, time.Now()); err != nil {
		return nil, err
	}

	if !user.IsActivated {
		user.IsActivated = true
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": now.Add(s.accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies the bearer token and returns the user ID
// from the subject claim. Any parse, signature, or claim problem yields
// ErrInvalidToken, never details.
func (s *authService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// allowLogin applies a per-email token bucket to code issuance.
func (s *authService) allowLogin(email string) bool {
	s.limiterMu.Lock()
	defer s.limiterMu.Unlock()
	limiter, ok := s.limiters[email]
	if !ok {
		limiter = rate.NewLimiter(s.loginRate, s.burst)
		s.limiters[email] = limiter
	}
	return limiter.Allow()
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
