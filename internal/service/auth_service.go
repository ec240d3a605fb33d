package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"reviewhub/internal/config"
	"reviewhub/internal/mailer"
	"reviewhub/internal/models"
	"reviewhub/internal/ratelimit"
	"reviewhub/internal/repository"
)

var (
	ErrInvalidToken = errors.New("invalid token")

	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

// AuthService owns the registration state machine
// (Unregistered -> Pending -> Confirmed) and the token exchange.
type AuthService interface {
	SignUp(ctx context.Context, username, email string) (*models.User, error)
	IssueToken(ctx context.Context, username, code string) (string, error)
	ValidateToken(tokenString string) (userID string, err error)
}

type authService struct {
	userRepo repository.UserRepository
	sender   mailer.Sender
	resend   ratelimit.ResendLimiter
	logger   *slog.Logger

	jwtSecret      string
	accessTokenTTL time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	sender mailer.Sender,
	resend ratelimit.ResendLimiter,
	cfg *config.Config,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		sender:         sender,
		resend:         resend,
		logger:         logger,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

// ValidateUsername rejects the reserved "me" literal and usernames outside
// the allowed charset.
func ValidateUsername(username string) error {
	if username == "me" {
		return ErrReservedUsername
	}
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// SignUp creates a Pending identity and mails it a one-time confirmation
// code. Calling it again with the exact same (username, email) pair is a
// resend: the stored credential is rotated and the code dispatched again.
// A partial match (username taken under another email, or vice versa) is a
// validation failure.
func (s *authService) SignUp(ctx context.Context, username, email string) (*models.User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	byName, err := s.userRepo.FindByUsername(username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if byName != nil {
		if byName.Email != email {
			return nil, ErrUsernameEmailMismatch
		}
		return s.reissueCode(ctx, byName)
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		// Email registered under a different username.
		return nil, ErrUsernameEmailMismatch
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	code := uuid.New().String()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Role:     models.RoleUser,
		CodeHash: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		if repository.IsUniqueViolation(err) {
			// Lost a race with a concurrent sign-up. If the winner holds the
			// exact same pair this is just a resend; anything else is the
			// usual mismatch.
			if winner, ferr := s.userRepo.FindByUsername(username); ferr == nil && winner.Email == email {
				return s.reissueCode(ctx, winner)
			}
			return nil, ErrUsernameEmailMismatch
		}
		return nil, err
	}

	s.dispatchCode(user.Email, code)
	return user, nil
}

// reissueCode rotates the stored credential and resends it. When the
// throttle says no, the existing code stays valid and the call still
// succeeds: sign-up is idempotent by design.
func (s *authService) reissueCode(ctx context.Context, user *models.User) (*models.User, error) {
	if !s.resend.Allow(ctx, user.Email) {
		s.logger.Info("confirmation code resend throttled", "email", user.Email)
		return user, nil
	}

	code := uuid.New().String()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.CodeHash = string(hash)
	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}

	s.dispatchCode(user.Email, code)
	return user, nil
}

// dispatchCode delivers the code best-effort; a delivery failure is logged
// and swallowed, never returned to the caller.
func (s *authService) dispatchCode(email, code string) {
	if err := s.sender.Send(email, "Confirmation code", code); err != nil {
		s.logger.Warn("confirmation code delivery failed", "email", email, "error", err)
	}
}

// IssueToken exchanges (username, confirmation code) for an access token.
// The code is verified through the same bcrypt path a password would use,
// but it arrives under its own field name and never as a password.
func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.CodeHash), []byte(code)); err != nil {
		return "", ErrBadCode
	}

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.accessTokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken checks the signature and expiry and returns the subject's
// user id. Role is deliberately not trusted from the token: the middleware
// reloads the user so an admin-driven role change applies immediately.
func (s *authService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
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
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
