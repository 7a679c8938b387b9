package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"store_manager/internal/apperrors"
	"store_manager/internal/models"
	"store_manager/internal/redis"
	"store_manager/internal/repository"
)

type Claims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

type AuthService interface {
	Login(username, password string) (string, *models.User, error)
	Logout(token string) error
	// VerifyToken resolves a bearer token to the acting user. Tokens whose
	// server-side session was deleted are rejected even before JWT expiry.
	VerifyToken(token string) (*models.Actor, error)
}

type authService struct {
	userRepo repository.UserRepository
	cache    *redis.Client
	secret   []byte
	ttl      time.Duration
}

// NewAuthService creates an auth service. cache may be nil, in which case
// sessions are not tracked and tokens live until JWT expiry.
func NewAuthService(userRepo repository.UserRepository, cache *redis.Client, secret string, ttl time.Duration) AuthService {
	return &authService{userRepo: userRepo, cache: cache, secret: []byte(secret), ttl: ttl}
}

func (s *authService) Login(username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, &apperrors.UnauthorizedError{Reason: "invalid credentials"}
		}
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, &apperrors.UnauthorizedError{Reason: "account is disabled"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, &apperrors.UnauthorizedError{Reason: "invalid credentials"}
	}

	now := time.Now()
	tokenID := uuid.NewString()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: user.ID,
		Role:   user.Role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}

	if s.cache != nil {
		session := &redis.SessionData{
			UserID:    user.ID,
			Role:      user.Role,
			IssuedAt:  now,
			ExpiresAt: now.Add(s.ttl),
		}
		if err := s.cache.SetSession(tokenID, session, s.ttl); err != nil {
			return "", nil, err
		}
	}

	return token, user, nil
}

func (s *authService) Logout(token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	if s.cache == nil {
		return nil
	}
	return s.cache.DeleteSession(claims.ID)
}

func (s *authService) VerifyToken(token string) (*models.Actor, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if _, err := s.cache.GetSession(claims.ID); err != nil {
			if errors.Is(err, redis.ErrCacheMiss) {
				return nil, &apperrors.UnauthorizedError{Reason: "session expired or revoked"}
			}
			return nil, err
		}
	}

	return &models.Actor{ID: claims.UserID, Role: models.UserRole(claims.Role)}, nil
}

func (s *authService) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, &apperrors.UnauthorizedError{Reason: "invalid or expired token"}
	}
	return claims, nil
}
