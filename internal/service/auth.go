package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/naimekattor/user-management-app/internal/apperr"
	"github.com/naimekattor/user-management-app/internal/core/auth"
	"github.com/naimekattor/user-management-app/internal/domain"
	"github.com/naimekattor/user-management-app/internal/repo"
	"github.com/naimekattor/user-management-app/pkg/utils"
)

const minPasswordLen = 6

// AuthService orchestrates the credential store, password hasher and token
// service behind the register/login/verify endpoints.
type AuthService struct {
	repo  domain.UserRepository
	jwter *auth.JWTer
	log   *zap.Logger
}

func NewAuthService(repo domain.UserRepository, jwter *auth.JWTer, log *zap.Logger) *AuthService {
	return &AuthService{repo: repo, jwter: jwter, log: log}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	name = strings.TrimSpace(name)
	email = domain.NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return apperr.BadRequest("All fields are required.")
	}
	// characters, not bytes: a short multibyte password must not slip past
	if utf8.RuneCountInString(password) < minPasswordLen {
		return apperr.BadRequest("Password must be at least 6 characters.")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return apperr.Internal("Server error. Please try again.", err)
	}
	if existing != nil {
		return apperr.Conflict("User already exists.")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return apperr.Internal("Server error. Please try again.", err)
	}

	u := domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.repo.Create(ctx, &u); err != nil {
		// concurrent registration can lose the race to the unique index
		if repo.IsDuplicateKey(err) {
			return apperr.Conflict("User already exists.")
		}
		return apperr.Internal("Server error. Please try again.", err)
	}
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return nil
}

// Login returns a 7-day bearer token plus the public view of the user. Bad
// password and unknown email are reported identically so callers cannot
// tell which emails exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.PublicUser, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", domain.PublicUser{}, apperr.BadRequest("Email and password are required.")
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.PublicUser{}, apperr.Internal("Server error", err)
	}
	if u == nil {
		return "", domain.PublicUser{}, apperr.Unauthorized("Invalid credentials.")
	}
	if u.IsBlocked {
		return "", domain.PublicUser{}, apperr.Forbidden("Your account is blocked.")
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return "", domain.PublicUser{}, apperr.Unauthorized("Invalid credentials.")
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		return "", domain.PublicUser{}, apperr.Internal("Server error", err)
	}
	u.LastLogin = &now

	token, err := s.jwter.Issue(u.ID)
	if err != nil {
		return "", domain.PublicUser{}, apperr.Internal("Server error", err)
	}
	s.log.Info("user logged in", zap.String("user_id", u.ID))
	return token, u.Public(), nil
}

// VerifyAndLoadUser is the sole gate for protected routes. Verification is
// two-phase: cryptographic validity first, then the live store state —
// blocking must take effect immediately, not at token expiry.
func (s *AuthService) VerifyAndLoadUser(ctx context.Context, tokenStr string) (*domain.User, error) {
	if tokenStr == "" {
		return nil, apperr.Unauthorized("No token provided")
	}
	claims, err := s.jwter.Parse(tokenStr)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid token")
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperr.Internal("Server error", err)
	}
	if u == nil || u.IsBlocked {
		return nil, apperr.Forbidden("Access denied")
	}
	return u, nil
}
