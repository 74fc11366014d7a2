// Package store holds the process-wide activity roster state.
package store

import (
	"context"
	"sync"

	"example.com/signup/internal/domain"
)

// Memory keeps all activities in memory. State lives for the lifetime of
// the process; there is no persistence by design.
type Memory struct {
	mu         sync.RWMutex
	activities map[string]*domain.Activity
}

// NewMemory constructs a store populated with the school's fixed catalog.
func NewMemory() *Memory {
	m := &Memory{activities: make(map[string]*domain.Activity)}
	m.seed()
	return m
}

func (m *Memory) seed() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range seedActivities() {
		activity := a
		m.activities[activity.Name] = &activity
	}
}

func seedActivities() []domain.Activity {
	return []domain.Activity{
		{
			Name:            "Basketball",
			Description:     "Practice drills and play basketball with the school team",
			Schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"james@mergington.edu"},
		},
		{
			Name:            "Soccer",
			Description:     "Join the school soccer team and compete in local matches",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 22,
			Participants:    []string{"alex@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Act, direct, and produce plays and performances",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"sarah@mergington.edu", "lucas@mergington.edu"},
		},
		{
			Name:            "Art Studio",
			Description:     "Explore painting, drawing, and sculpture techniques",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"maya@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Develop public speaking and argumentation skills",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"noah@mergington.edu", "ava@mergington.edu"},
		},
		{
			Name:            "Math Olympiad",
			Description:     "Solve challenging problems and train for math competitions",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"isaac@mergington.edu"},
		},
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
	}
}

// Snapshot returns a copy of every activity keyed by name. Participant
// slices are copied so callers never alias internal state.
func (m *Memory) Snapshot(ctx context.Context) (map[string]domain.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]domain.Activity, len(m.activities))
	for name, activity := range m.activities {
		out[name] = copyActivity(activity)
	}
	return out, nil
}

// Get returns a copy of the named activity, or nil when absent.
func (m *Memory) Get(ctx context.Context, name string) (*domain.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	activity, ok := m.activities[name]
	if !ok {
		return nil, nil
	}
	copied := copyActivity(activity)
	return &copied, nil
}

// AddParticipant appends email to the roster, preserving insertion order.
// The duplicate check and the append happen under one lock, so concurrent
// signups cannot slip the same email in twice.
func (m *Memory) AddParticipant(ctx context.Context, name, email string) (*domain.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	activity, ok := m.activities[name]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}
	if activity.HasParticipant(email) {
		return nil, domain.ErrAlreadySignedUp
	}

	activity.Participants = append(activity.Participants, email)
	copied := copyActivity(activity)
	return &copied, nil
}

// RemoveParticipant removes the single occurrence of email from the roster.
func (m *Memory) RemoveParticipant(ctx context.Context, name, email string) (*domain.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	activity, ok := m.activities[name]
	if !ok {
		return nil, domain.ErrActivityNotFound
	}

	for i, p := range activity.Participants {
		if p == email {
			activity.Participants = append(activity.Participants[:i], activity.Participants[i+1:]...)
			copied := copyActivity(activity)
			return &copied, nil
		}
	}
	return nil, domain.ErrNotSignedUp
}

func copyActivity(a *domain.Activity) domain.Activity {
	copied := *a
	copied.Participants = make([]string, len(a.Participants))
	copy(copied.Participants, a.Participants)
	return copied
}
