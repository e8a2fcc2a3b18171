package users

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ccsfp-clinic/clinic-gateway/internal/clinicapi"
	"github.com/ccsfp-clinic/clinic-gateway/internal/messaging"
)

// Account roles the backend hands back on login.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
	RoleNurse = "nurse"
)

// New accounts register as nurses; the backend holds them Pending until an
// admin approves.
const defaultRole = RoleNurse

// API is the slice of the backend client the service needs.
type API interface {
	Lister
	Register(ctx context.Context, req clinicapi.RegisterRequest) error
	ApproveUser(ctx context.Context, username string) error
	DeleteUser(ctx context.Context, username string) error
	Login(ctx context.Context, req clinicapi.LoginRequest) (*clinicapi.LoginResult, error)
}

// Service coordinates staff account actions against the backend.
type Service struct {
	api       API
	directory *Directory
	publisher messaging.PublisherInterface
}

func NewService(api API, directory *Directory, publisher messaging.PublisherInterface) *Service {
	return &Service{api: api, directory: directory, publisher: publisher}
}

// Register submits a new account request. The account lands Pending; it
// cannot log in until approved.
func (s *Service) Register(ctx context.Context, req clinicapi.RegisterRequest) error {
	switch {
	case req.FullName == "":
		return ErrMissingFullName
	case req.Username == "":
		return ErrMissingUsername
	case req.Email == "":
		return ErrMissingEmail
	case req.Password == "":
		return ErrMissingPassword
	}

	if req.Role == "" {
		req.Role = defaultRole
	}

	if err := s.api.Register(ctx, req); err != nil {
		log.Printf("Failed to register user %s: %v", req.Username, err)
		return fmt.Errorf("failed to register user: %w", err)
	}

	s.publishUserEvent(ctx, messaging.EventUserRegistered, clinicapi.AdminUser{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Status:   StatusPending,
	})
	return nil
}

// Approve activates a pending account. Approving an already-approved
// account is rejected here rather than bounced off the backend.
func (s *Service) Approve(ctx context.Context, username string) error {
	user, ok := s.directory.ByUsername(username)
	if !ok {
		return ErrUserNotFound
	}
	if user.Status != StatusPending {
		return ErrNotPending
	}

	if err := s.api.ApproveUser(ctx, username); err != nil {
		log.Printf("Failed to approve user %s: %v", username, err)
		return fmt.Errorf("failed to approve user: %w", err)
	}

	user.Status = StatusApproved
	s.publishUserEvent(ctx, messaging.EventUserApproved, user)
	s.directory.Refresh(ctx)
	return nil
}

// Delete removes an account from the directory.
func (s *Service) Delete(ctx context.Context, username string) error {
	user, ok := s.directory.ByUsername(username)
	if !ok {
		return ErrUserNotFound
	}

	if err := s.api.DeleteUser(ctx, username); err != nil {
		log.Printf("Failed to delete user %s: %v", username, err)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.publishUserEvent(ctx, messaging.EventUserDeleted, user)
	s.directory.Refresh(ctx)
	return nil
}

// Login authenticates against the backend and returns the account's role.
// Any backend rejection reads as invalid credentials to the visitor.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrLoginFailed
	}

	result, err := s.api.Login(ctx, clinicapi.LoginRequest{Username: username, Password: password})
	if err != nil {
		log.Printf("Login failed for %s: %v", username, err)

		var apiErr *clinicapi.APIError
		if errors.As(err, &apiErr) {
			return "", ErrLoginFailed
		}
		return "", fmt.Errorf("failed to reach login service: %w", err)
	}

	return result.Role, nil
}

func (s *Service) publishUserEvent(ctx context.Context, eventType string, user clinicapi.AdminUser) {
	if s.publisher == nil {
		return
	}
	event := messaging.UserEvent{
		BaseEvent: messaging.NewBaseEvent(eventType),
		Data: messaging.UserEventData{
			Username: user.Username,
			FullName: user.FullName,
			Email:    user.Email,
			Status:   user.Status,
		},
	}
	if err := s.publisher.Publish(ctx, eventType, event); err != nil {
		log.Printf("Failed to publish %s event: %v", eventType, err)
	}
}
