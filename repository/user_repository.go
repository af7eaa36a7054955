package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/freshfruit/storefront/database"
	"github.com/freshfruit/storefront/models"
)

// Sentinel errors translated by the service layer.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrEmailExists    = errors.New("email already exists")
)

// UserRepository reads and writes the users collection. Email lookups
// are case-sensitive, matching the stored value exactly.
type UserRepository struct {
	store database.Store
}

func NewUserRepository(store database.Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var users []models.User
	if err := r.store.Get(ctx, database.Users, &users); err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, ErrRecordNotFound
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var users []models.User
	if err := r.store.Get(ctx, database.Users, &users); err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrRecordNotFound
}

// Create appends user if no record with the same email exists. The
// check and the append run inside one Store.Update, so two concurrent
// registrations cannot both pass the uniqueness check.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.store.Update(ctx, database.Users, func(records []byte) ([]byte, error) {
		var users []models.User
		if err := json.Unmarshal(records, &users); err != nil {
			return nil, err
		}
		for i := range users {
			if users[i].Email == user.Email {
				return nil, ErrEmailExists
			}
		}
		users = append(users, *user)
		return json.Marshal(users)
	})
}
