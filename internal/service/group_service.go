package service

import (
	"context"
	"errors"
	"fmt"

	"fairsplit/internal/models"
	"fairsplit/internal/storage"
)

// ErrBadRequest signals malformed service input that is not covered by the
// engine's error taxonomy (missing names, empty bodies, and the like).
var ErrBadRequest = errors.New("bad request")

// GroupService handles group CRUD against the ledger store.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// Create makes a new group with the given members. Every member ID must
// refer to an existing user.
func (s *GroupService) Create(ctx context.Context, name, description string, memberIDs []string) (*models.Group, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrBadRequest)
	}

	seen := make(map[string]bool, len(memberIDs))
	members := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := s.store.GetUser(ctx, id); err != nil {
			return nil, fmt.Errorf("member %s: %w", id, err)
		}
		members = append(members, id)
	}

	group := &models.Group{
		Name:        name,
		Description: description,
		Members:     members,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// Get retrieves a group by ID, members included.
func (s *GroupService) Get(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// List returns all groups.
func (s *GroupService) List(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListGroups(ctx)
}

// Delete removes a group and all its expenses.
func (s *GroupService) Delete(ctx context.Context, groupID string) error {
	return s.store.DeleteGroup(ctx, groupID)
}
