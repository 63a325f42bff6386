// Package repository provides the data access layer.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"seyone-academy-go/internal/model"
	"seyone-academy-go/pkg/kv"
	"seyone-academy-go/pkg/log"
)

const (
	usersKey       = "users"
	currentUserKey = "current_user"
)

// UserRepository is the typed view of the local storage keys that hold the
// registered users and each client's session marker.
type UserRepository interface {
	// FindAll returns the registered users in registration order. An absent
	// or malformed value reads as no users.
	FindAll(ctx context.Context) ([]model.User, error)
	SaveAll(ctx context.Context, users []model.User) error
	// CurrentUser returns the client's marker, or nil when logged out or malformed.
	CurrentUser(ctx context.Context, clientID string) (*model.SessionMarker, error)
	SetCurrentUser(ctx context.Context, clientID string, marker model.SessionMarker) error
	ClearCurrentUser(ctx context.Context, clientID string) error
}

type kvUserRepository struct {
	store kv.Store
}

// NewUserRepository creates a UserRepository over store. The users list is
// shared; markers live under a per-client key prefix.
func NewUserRepository(store kv.Store) UserRepository {
	return &kvUserRepository{store: store}
}

func clientStore(store kv.Store, clientID string) kv.Store {
	return kv.Prefixed(store, "client:"+clientID+":")
}

func (r *kvUserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	raw, ok, err := r.store.Get(ctx, usersKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	if !ok {
		return []model.User{}, nil
	}
	var users []model.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		log.Warnw("stored users are malformed, treating as empty", "error", err)
		return []model.User{}, nil
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (r *kvUserRepository) SaveAll(ctx context.Context, users []model.User) error {
	if users == nil {
		users = []model.User{}
	}
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}
	if err := r.store.Set(ctx, usersKey, string(data)); err != nil {
		return fmt.Errorf("failed to write users: %w", err)
	}
	return nil
}

func (r *kvUserRepository) CurrentUser(ctx context.Context, clientID string) (*model.SessionMarker, error) {
	raw, ok, err := clientStore(r.store, clientID).Get(ctx, currentUserKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read current user: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var marker model.SessionMarker
	if err := json.Unmarshal([]byte(raw), &marker); err != nil || marker.Email == "" {
		log.Warnw("stored session marker is malformed, treating as logged out", "clientId", clientID, "error", err)
		return nil, nil
	}
	return &marker, nil
}

func (r *kvUserRepository) SetCurrentUser(ctx context.Context, clientID string, marker model.SessionMarker) error {
	data, err := json.Marshal(marker)
	if err != nil {
		return fmt.Errorf("failed to marshal session marker: %w", err)
	}
	if err := clientStore(r.store, clientID).Set(ctx, currentUserKey, string(data)); err != nil {
		return fmt.Errorf("failed to write current user: %w", err)
	}
	return nil
}

func (r *kvUserRepository) ClearCurrentUser(ctx context.Context, clientID string) error {
	if err := clientStore(r.store, clientID).Delete(ctx, currentUserKey); err != nil {
		return fmt.Errorf("failed to delete current user: %w", err)
	}
	return nil
}
