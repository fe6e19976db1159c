package service

import (
	"context"
	"fmt"

	"fairsplit/internal/models"
	"fairsplit/internal/storage"
)

// UserService handles user CRUD against the ledger store.
type UserService struct {
	store storage.Store
}

// NewUserService creates a UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// Create adds a user without credentials. Such users can participate in
// groups and expenses but cannot log in until they register.
func (s *UserService) Create(ctx context.Context, name, email string) (*models.User, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrBadRequest)
	}
	user := models.NewUser(name, email, "")
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUser(ctx, userID)
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.store.ListUsers(ctx)
}

// Delete removes a user and every ledger record that references them.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	return s.store.DeleteUser(ctx, userID)
}
