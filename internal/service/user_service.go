// Package service contains the application's business logic.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"seyone-academy-go/internal/model"
	"seyone-academy-go/internal/repository"
	"seyone-academy-go/pkg/events"
	"seyone-academy-go/pkg/hash"
	"seyone-academy-go/pkg/log"
	"seyone-academy-go/pkg/validate"
)

const (
	MsgRegistered         = "Registration successful"
	MsgEmailExists        = "Email already exists"
	MsgLoginSuccessful    = "Login successful"
	MsgInvalidCredentials = "Invalid email or password"
	MsgPasswordTooLong    = "Password is too long"
)

// AuthResult is the outcome of register or login. Validation failures are
// reported here, not as errors.
type AuthResult struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	User    *model.SessionMarker `json:"user,omitempty"`
}

// RegisterInput is the signup form.
type RegisterInput struct {
	Name     string `json:"name" binding:"notblank,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"notblank,max=72"`
}

// LoginInput is the login form.
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserService is the auth gateway over the local user store. Every mutating
// call publishes an event after the store write.
type UserService interface {
	Register(ctx context.Context, clientID string, in RegisterInput) (AuthResult, error)
	Login(ctx context.Context, clientID string, in LoginInput) (AuthResult, error)
	Logout(ctx context.Context, clientID string) error
	CurrentUser(ctx context.Context, clientID string) (*model.SessionMarker, error)
	ListUsers(ctx context.Context) ([]model.PublicUser, error)
}

type userService struct {
	userRepo repository.UserRepository
	bus      *events.Bus
	latency  time.Duration

	// mu serialises the read-modify-write of the users list.
	mu sync.Mutex
}

// NewUserService creates the auth gateway. latency simulates a backend round
// trip before each register or login.
func NewUserService(userRepo repository.UserRepository, bus *events.Bus, latency time.Duration) UserService {
	return &userService{userRepo: userRepo, bus: bus, latency: latency}
}

func (s *userService) Register(ctx context.Context, clientID string, in RegisterInput) (AuthResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		return AuthResult{Success: false, Message: validationMessage(err)}, nil
	}
	// max=72 above counts runes; bcrypt counts bytes.
	if len(in.Password) > hash.MaxPasswordBytes {
		return AuthResult{Success: false, Message: MsgPasswordTooLong}, nil
	}
	if err := s.simulateLatency(ctx); err != nil {
		return AuthResult{}, err
	}

	hashedPassword, err := hash.HashPassword(in.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		s.mu.Unlock()
		return AuthResult{}, err
	}
	for _, u := range users {
		if u.Email == in.Email {
			s.mu.Unlock()
			return AuthResult{Success: false, Message: MsgEmailExists}, nil
		}
	}
	user := model.User{Name: in.Name, Email: in.Email, Password: hashedPassword}
	users = append(users, user)
	err = s.userRepo.SaveAll(ctx, users)
	s.mu.Unlock()
	if err != nil {
		return AuthResult{}, err
	}

	marker := user.Marker()
	if err := s.userRepo.SetCurrentUser(ctx, clientID, marker); err != nil {
		return AuthResult{}, err
	}
	s.bus.Publish(events.Event{Kind: events.KindRegistered, ClientID: clientID, User: &marker})
	log.Infow("user registered", "clientId", clientID, "email", marker.Email)
	return AuthResult{Success: true, Message: MsgRegistered, User: &marker}, nil
}

func (s *userService) Login(ctx context.Context, clientID string, in LoginInput) (AuthResult, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return AuthResult{}, err
	}

	email := strings.TrimSpace(in.Email)
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return AuthResult{}, err
	}
	for _, u := range users {
		if u.Email != email || !hash.CheckPasswordHash(in.Password, u.Password) {
			continue
		}
		marker := u.Marker()
		if err := s.userRepo.SetCurrentUser(ctx, clientID, marker); err != nil {
			return AuthResult{}, err
		}
		s.bus.Publish(events.Event{Kind: events.KindLoggedIn, ClientID: clientID, User: &marker})
		return AuthResult{Success: true, Message: MsgLoginSuccessful, User: &marker}, nil
	}
	return AuthResult{Success: false, Message: MsgInvalidCredentials}, nil
}

func (s *userService) Logout(ctx context.Context, clientID string) error {
	if err := s.userRepo.ClearCurrentUser(ctx, clientID); err != nil {
		return err
	}
	s.bus.Publish(events.Event{Kind: events.KindLoggedOut, ClientID: clientID})
	return nil
}

func (s *userService) CurrentUser(ctx context.Context, clientID string) (*model.SessionMarker, error) {
	return s.userRepo.CurrentUser(ctx, clientID)
}

func (s *userService) ListUsers(ctx context.Context) ([]model.PublicUser, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, model.PublicUser{Name: u.Name, Email: u.Email})
	}
	return out, nil
}

func (s *userService) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// validationMessage joins the translated field errors in field order.
func validationMessage(err error) string {
	fields := validate.Errors(err)
	if len(fields) == 0 {
		return err.Error()
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fields[k])
	}
	return strings.Join(msgs, "; ")
}
