package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/freshfruit/storefront/database"
	"github.com/freshfruit/storefront/models"

	"github.com/stretchr/testify/suite"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	repo *UserRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	s.repo = NewUserRepository(database.NewMemoryStore())
}

func (s *UserRepositoryTestSuite) TestCreateAndFind() {
	ctx := context.Background()
	user := &models.User{ID: 1, Name: "Ana", Email: "ana@x.com", Password: "hash"}

	s.Require().NoError(s.repo.Create(ctx, user))

	byEmail, err := s.repo.FindByEmail(ctx, "ana@x.com")
	s.Require().NoError(err)
	s.Equal(user.ID, byEmail.ID)

	byID, err := s.repo.FindByID(ctx, 1)
	s.Require().NoError(err)
	s.Equal("Ana", byID.Name)
}

func (s *UserRepositoryTestSuite) TestDuplicateEmail() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Create(ctx, &models.User{ID: 1, Email: "ana@x.com"}))

	err := s.repo.Create(ctx, &models.User{ID: 2, Email: "ana@x.com"})
	s.ErrorIs(err, ErrEmailExists)
}

func (s *UserRepositoryTestSuite) TestEmailLookupIsCaseSensitive() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Create(ctx, &models.User{ID: 1, Email: "Ana@x.com"}))

	_, err := s.repo.FindByEmail(ctx, "ana@x.com")
	s.ErrorIs(err, ErrRecordNotFound)
}

func (s *UserRepositoryTestSuite) TestMissingRecords() {
	ctx := context.Background()

	_, err := s.repo.FindByEmail(ctx, "nobody@x.com")
	s.ErrorIs(err, ErrRecordNotFound)

	_, err = s.repo.FindByID(ctx, 99)
	s.ErrorIs(err, ErrRecordNotFound)
}

// Concurrent registrations with the same email: exactly one may win,
// because the uniqueness check and append are one atomic Update.
func (s *UserRepositoryTestSuite) TestConcurrentCreateSameEmail() {
	ctx := context.Background()
	const attempts = 16

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.repo.Create(ctx, &models.User{ID: int64(i + 1), Email: "race@x.com"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			s.ErrorIs(err, ErrEmailExists)
		}
	}
	s.Equal(1, succeeded)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
