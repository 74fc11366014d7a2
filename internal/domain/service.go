// Package domain defines the business logic for the signup service.
package domain

import (
	"context"
	"errors"

	"example.com/signup/internal/observability"
)

var (
	// ErrActivityNotFound is returned when an activity cannot be located.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadySignedUp indicates the email is already on the roster.
	ErrAlreadySignedUp = errors.New("student is already signed up")
	// ErrNotSignedUp indicates the email is not on the roster.
	ErrNotSignedUp = errors.New("student is not signed up")
)

// Store captures roster state operations.
type Store interface {
	Snapshot(ctx context.Context) (map[string]Activity, error)
	Get(ctx context.Context, name string) (*Activity, error)
	AddParticipant(ctx context.Context, name, email string) (*Activity, error)
	RemoveParticipant(ctx context.Context, name, email string) (*Activity, error)
}

// RosterEvents receives notifications after successful roster mutations.
// Implementations must not block the caller.
type RosterEvents interface {
	SignedUp(ctx context.Context, activity, email string, rosterSize int)
	Unregistered(ctx context.Context, activity, email string, rosterSize int)
}

// Service orchestrates roster workflows.
type Service struct {
	store  Store
	events RosterEvents
}

// NewService constructs a Service. events may be nil.
func NewService(store Store, events RosterEvents) *Service {
	return &Service{store: store, events: events}
}

// ListActivities returns a snapshot of every activity keyed by name.
func (s *Service) ListActivities(ctx context.Context) (map[string]Activity, error) {
	return s.store.Snapshot(ctx)
}

// GetActivity fetches a single activity by name.
func (s *Service) GetActivity(ctx context.Context, name string) (*Activity, error) {
	activity, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	return activity, nil
}

// Signup appends email to the activity's roster. The email must not already
// be present; capacity is reported but intentionally not enforced.
func (s *Service) Signup(ctx context.Context, name, email string) error {
	activity, err := s.store.AddParticipant(ctx, name, email)
	if err != nil {
		return err
	}
	observability.RecordSignup(name, len(activity.Participants))
	if s.events != nil {
		s.events.SignedUp(ctx, name, email, len(activity.Participants))
	}
	return nil
}

// Unregister removes email from the activity's roster.
func (s *Service) Unregister(ctx context.Context, name, email string) error {
	activity, err := s.store.RemoveParticipant(ctx, name, email)
	if err != nil {
		return err
	}
	observability.RecordUnregister(name, len(activity.Participants))
	if s.events != nil {
		s.events.Unregistered(ctx, name, email, len(activity.Participants))
	}
	return nil
}
