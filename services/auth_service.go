package services

import (
	"context"
	"errors"

	"github.com/freshfruit/storefront/apperrors"
	"github.com/freshfruit/storefront/models"
	"github.com/freshfruit/storefront/repository"

	"golang.org/x/crypto/bcrypt"
)

type IUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// AuthService covers registration, login and current-user lookup.
// Passwords are stored as bcrypt hashes; the legacy storefront kept
// them in plaintext, which is deliberately not reproduced.
type AuthService struct {
	userRepo  IUserRepository
	tokens    TokenIssuer
	passwords *PasswordValidator
}

func NewAuthService(userRepo IUserRepository, tokens TokenIssuer, passwords *PasswordValidator) *AuthService {
	if passwords == nil {
		passwords = NewPasswordValidator()
	}
	return &AuthService{userRepo: userRepo, tokens: tokens, passwords: passwords}
}

// Register creates a new account. The email uniqueness check and the
// insert are one atomic repository operation.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if name == "" || email == "" {
		return nil, apperrors.ErrInvalidInput
	}
	if err := s.passwords.ValidatePassword(password); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrValidation, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		ID:       nextID(),
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return user, nil
}

// Login checks credentials and issues a session token. Unknown email
// and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(Claims{ID: user.ID, Email: user.Email, Name: user.Name})
	if err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return token, user, nil
}

// CurrentUser resolves the token's identity claim to the stored user.
func (s *AuthService) CurrentUser(ctx context.Context, claims *Claims) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return user, nil
}
