package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"postboard/internal/model"
	"postboard/internal/repository"
)

// bcrypt ignores input past 72 bytes; the validator's max counts runes.
const maxPasswordBytes = 72

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type TokenIssuer interface {
	GenerateToken(userID uint, username string) (string, error)
}

type AuthService struct {
	userRepo *repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
}

type RegisterInput struct {
	Username string `validate:"required,alphanum,min=3,max=30"`
	Email    string `validate:"required,email,max=128"`
	Password string `validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(userRepo *repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if err := ValidateStruct(input); err != nil {
		return nil, err
	}
	if len(input.Password) > maxPasswordBytes {
		return nil, newFieldError("password", fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
	}

	existingByName, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existingByName != nil {
		return nil, ErrUsernameExists
	}

	existingByEmail, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingByEmail != nil {
		return nil, ErrEmailExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, s.whichExists(ctx, input.Username)
		}
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := ValidateStruct(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredential
	}

	return s.issue(user)
}

func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	return s.userRepo.GetByID(ctx, id)
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("generate token failed: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// whichExists resolves a unique index violation that slipped past the pre-checks.
func (s *AuthService) whichExists(ctx context.Context, username string) error {
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil && existing != nil {
		return ErrUsernameExists
	}
	return ErrEmailExists
}
