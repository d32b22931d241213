package app

import (
	"context"
	"strings"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/user"
	"studentgigs/internal/security"
)

type AuthService struct {
	users       user.Repository
	jwtProvider *security.JWTProvider
	logger      Logger
}

func NewAuthService(users user.Repository, jwtProvider *security.JWTProvider, logger Logger) *AuthService {
	return &AuthService{users: users, jwtProvider: jwtProvider, logger: logger}
}

type AuthResult struct {
	User      *user.User
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) Register(ctx context.Context, email, name, password string, role user.Role) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	fields := map[string]string{}
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "a valid email is required"
	}
	if name == "" {
		fields["name"] = "name is required"
	}
	if !security.ValidPasswordLength(password) {
		fields["password"] = "password must be at least 8 characters"
	}
	if role != user.RoleStudent && role != user.RoleEmployer {
		fields["role"] = "role must be student or employer"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid registration", fields)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	account, err := s.users.Create(ctx, user.User{Role: role, Email: email, Name: name, PasswordHash: hash})
	if err != nil {
		return nil, err
	}
	return s.issueToken(account)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	account, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			// Same answer as a wrong password; no account oracle.
			return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
		}
		return nil, err
	}
	if !security.VerifyPassword(account.PasswordHash, password) {
		return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
	}
	return s.issueToken(account)
}

func (s *AuthService) GetUser(ctx context.Context, id common.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) issueToken(account *user.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwtProvider.Generate(account.ID, account.Email, account.Name, string(account.Role))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue token", err)
	}
	return &AuthResult{User: account, Token: token, ExpiresAt: expiresAt}, nil
}
