package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/harentsoaR/mamacare-api/internal/apperror"
	"github.com/harentsoaR/mamacare-api/internal/models"
	"github.com/harentsoaR/mamacare-api/internal/utils"
)

type AuthService struct {
	accounts  AccountStore
	tokens    *utils.TokenService
	passwords *utils.PasswordHasher
	logger    *slog.Logger
}

func NewAuthService(accounts AccountStore, tokens *utils.TokenService, passwords *utils.PasswordHasher, logger *slog.Logger) *AuthService {
	return &AuthService{
		accounts:  accounts,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

type UserSignup struct {
	Email          string
	Password       string
	Name           string
	Phone          string
	DeliveryStatus string
}

type DoctorSignup struct {
	Email           string
	Password        string
	Name            string
	Phone           string
	MedicalID       string
	WorkExperience  string
	ClinicName      string
	MotherhoodStage string
}

// AuthResult bundles the account with the tokens issued for it.
type AuthResult struct {
	Account      *models.Account
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) SignupUser(ctx context.Context, in UserSignup) (*AuthResult, error) {
	account := &models.Account{
		Email:       in.Email,
		Name:        in.Name,
		Phone:       in.Phone,
		Role:        models.RoleUser,
		UserProfile: models.UserProfile{DeliveryStatus: in.DeliveryStatus},
	}
	return s.signup(ctx, account, in.Password)
}

func (s *AuthService) SignupDoctor(ctx context.Context, in DoctorSignup) (*AuthResult, error) {
	account := &models.Account{
		Email: in.Email,
		Name:  in.Name,
		Phone: in.Phone,
		Role:  models.RoleDoctor,
		DoctorProfile: models.DoctorProfile{
			MedicalID:       in.MedicalID,
			WorkExperience:  in.WorkExperience,
			ClinicName:      in.ClinicName,
			MotherhoodStage: in.MotherhoodStage,
		},
	}
	return s.signup(ctx, account, in.Password)
}

// signup enforces email uniqueness within the account's role. The store's
// unique index catches concurrent signups that pass the check.
func (s *AuthService) signup(ctx context.Context, account *models.Account, password string) (*AuthResult, error) {
	exists, err := s.accounts.EmailExists(ctx, account.Role, account.Email)
	if err != nil {
		return nil, fmt.Errorf("services/auth: checking email: %w", err)
	}
	if exists {
		return nil, apperror.DuplicateEmail()
	}

	hashed, err := s.passwords.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("services/auth: hashing password: %w", err)
	}
	account.Password = hashed
	account.WatchHistory = []string{}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("services/auth: creating %s: %w", account.Role, err)
	}

	s.logger.Info("account created",
		slog.String("role", string(account.Role)),
		slog.String("accountID", account.ID.Hex()),
	)
	return s.issue(account)
}

func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*AuthResult, error) {
	return s.login(ctx, models.RoleUser, email, password)
}

func (s *AuthService) LoginDoctor(ctx context.Context, email, password string) (*AuthResult, error) {
	return s.login(ctx, models.RoleDoctor, email, password)
}

func (s *AuthService) login(ctx context.Context, role models.Role, email, password string) (*AuthResult, error) {
	account, err := s.accounts.FindByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, apperror.ErrAccountNotFound) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, fmt.Errorf("services/auth: finding %s: %w", role, err)
	}
	if !s.passwords.CheckPasswordHash(password, account.Password) {
		return nil, apperror.InvalidCredentials()
	}

	s.logger.Info("account logged in",
		slog.String("role", string(role)),
		slog.String("accountID", account.ID.Hex()),
	)
	return s.issue(account)
}

// Profile returns the account behind an authenticated session.
func (s *AuthService) Profile(ctx context.Context, accountID string, role models.Role) (*models.Account, error) {
	account, err := s.accounts.FindByID(ctx, role, accountID)
	if err != nil {
		return nil, fmt.Errorf("services/auth: loading %s %s: %w", role, accountID, err)
	}
	return account, nil
}

// Refresh exchanges a refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}
	token, err := s.tokens.IssueAccess(claims.UserID, claims.Role)
	if err != nil {
		return "", fmt.Errorf("services/auth: issuing access token: %w", err)
	}
	return token, nil
}

func (s *AuthService) issue(account *models.Account) (*AuthResult, error) {
	id := account.ID.Hex()
	access, err := s.tokens.IssueAccess(id, account.Role)
	if err != nil {
		return nil, fmt.Errorf("services/auth: issuing access token for %s: %w", id, err)
	}
	refresh, err := s.tokens.IssueRefresh(id, account.Role)
	if err != nil {
		return nil, fmt.Errorf("services/auth: issuing refresh token for %s: %w", id, err)
	}
	return &AuthResult{Account: account, AccessToken: access, RefreshToken: refresh}, nil
}
