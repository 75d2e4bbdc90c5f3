package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/harentsoaR/mamacare-api/internal/apperror"
	"github.com/harentsoaR/mamacare-api/internal/models"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID string      `json:"userId"`
	Role   models.Role `json:"role"`
	Type   string      `json:"type"`
	jwt.RegisteredClaims
}

// TokenService signs and validates HS256 session tokens. The secret and the
// clock are fixed at construction.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("JWT secret must be at least 16 characters")
	}
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// WithClock replaces the time source used for issuing and validating tokens.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

func (s *TokenService) IssueAccess(userID string, role models.Role) (string, error) {
	return s.Issue(userID, role, TokenTypeAccess, s.accessTTL)
}

func (s *TokenService) IssueRefresh(userID string, role models.Role) (string, error) {
	return s.Issue(userID, role, TokenTypeRefresh, s.refreshTTL)
}

// Issue creates a signed token for the given identity that expires after ttl.
func (s *TokenService) Issue(userID string, role models.Role, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry. Expired tokens fail with
// apperror.ErrTokenExpired, everything else with apperror.ErrTokenInvalid.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.New(apperror.ErrTokenExpired, "Token expired")
		}
		return nil, apperror.New(apperror.ErrTokenInvalid, "Invalid token")
	}
	if !token.Valid || claims.UserID == "" || !claims.Role.Valid() {
		return nil, apperror.New(apperror.ErrTokenInvalid, "Invalid token")
	}
	return claims, nil
}

func (s *TokenService) VerifyAccess(tokenStr string) (*Claims, error) {
	return s.verifyType(tokenStr, TokenTypeAccess)
}

func (s *TokenService) VerifyRefresh(tokenStr string) (*Claims, error) {
	return s.verifyType(tokenStr, TokenTypeRefresh)
}

func (s *TokenService) verifyType(tokenStr, tokenType string) (*Claims, error) {
	claims, err := s.Verify(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Type != tokenType {
		return nil, apperror.New(apperror.ErrTokenInvalid, "Invalid token")
	}
	return claims, nil
}
