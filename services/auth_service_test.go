package services

import (
	"context"
	"testing"

	"github.com/freshfruit/storefront/apperrors"
	"github.com/freshfruit/storefront/models"
	"github.com/freshfruit/storefront/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- Mocks for Dependencies ---

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) Issue(claims Claims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

// --- Tests ---

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockUserRepository)
		authService := NewAuthService(mockRepo, new(MockTokenIssuer), nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()

		// Act
		user, err := authService.Register(ctx, "Ana", "ana@x.com", "pw")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Ana", user.Name)
		assert.Equal(t, "ana@x.com", user.Email)
		assert.NotZero(t, user.ID)
		assert.NotEqual(t, "pw", user.Password, "password must be stored hashed")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("pw")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Email Taken", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockUserRepository)
		authService := NewAuthService(mockRepo, new(MockTokenIssuer), nil)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(repository.ErrEmailExists).Once()

		// Act
		_, err := authService.Register(ctx, "Ana", "ana@x.com", "pw")

		// Assert
		assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty Password", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockUserRepository)
		authService := NewAuthService(mockRepo, new(MockTokenIssuer), nil)

		// Act
		_, err := authService.Register(ctx, "Ana", "ana@x.com", "")

		// Assert
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Missing Name", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := NewAuthService(mockRepo, new(MockTokenIssuer), nil)

		_, err := authService.Register(ctx, "", "ana@x.com", "pw")

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	password := "strongpassword123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	testUser := &models.User{
		ID:       1712345678901,
		Name:     "Test",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockUserRepository)
		mockIssuer := new(MockTokenIssuer)
		authService := NewAuthService(mockRepo, mockIssuer, nil)
		mockRepo.On("FindByEmail", ctx, testUser.Email).Return(testUser, nil).Once()
		mockIssuer.On("Issue", Claims{ID: testUser.ID, Email: testUser.Email, Name: testUser.Name}).
			Return("signed-token", nil).Once()

		// Act
		token, user, err := authService.Login(ctx, testUser.Email, password)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		assert.Equal(t, testUser.ID, user.ID)
		mockRepo.AssertExpectations(t)
		mockIssuer.AssertExpectations(t)
	})

	t.Run("User Not Found", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockUserRepository)
		authService := NewAuthService(mockRepo, new(MockTokenIssuer), nil)
		mockRepo.On("FindByEmail", ctx, "notfound@example.com").Return(nil, repository.ErrRecordNotFound).Once()

		// Act
		_, _, err := authService.Login(ctx, "notfound@example.com", password)

		// Assert
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Incorrect Password", func(t *testing.T) {
		// Arrange
		mockRepo := new(MockUserRepository)
		mockIssuer := new(MockTokenIssuer)
		authService := NewAuthService(mockRepo, mockIssuer, nil)
		mockRepo.On("FindByEmail", ctx, testUser.Email).Return(testUser, nil).Once()

		// Act
		_, _, err := authService.Login(ctx, testUser.Email, "wrongpassword")

		// Assert
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		mockIssuer.AssertNotCalled(t, "Issue")
		mockRepo.AssertExpectations(t)
	})
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	testUser := &models.User{ID: 42, Name: "Ana", Email: "ana@x.com"}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := NewAuthService(mockRepo, new(MockTokenIssuer), nil)
		mockRepo.On("FindByID", ctx, int64(42)).Return(testUser, nil).Once()

		user, err := authService.CurrentUser(ctx, &Claims{ID: 42, Email: "ana@x.com", Name: "Ana"})

		require.NoError(t, err)
		assert.Equal(t, testUser, user)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := NewAuthService(mockRepo, new(MockTokenIssuer), nil)
		mockRepo.On("FindByID", ctx, int64(42)).Return(nil, repository.ErrRecordNotFound).Once()

		_, err := authService.CurrentUser(ctx, &Claims{ID: 42})

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		mockRepo.AssertExpectations(t)
	})
}
