package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignupNotifiesEvents(t *testing.T) {
	store := newStubStore()
	events := &recordingEvents{}
	service := NewService(store, events)

	err := service.Signup(context.Background(), "Chess Club", "new@mergington.edu")
	require.NoError(t, err)

	require.Len(t, events.signups, 1)
	require.Equal(t, "Chess Club", events.signups[0].activity)
	require.Equal(t, "new@mergington.edu", events.signups[0].email)
	require.Equal(t, 2, events.signups[0].rosterSize)
}

func TestSignupDuplicateEmitsNoEvent(t *testing.T) {
	store := newStubStore()
	events := &recordingEvents{}
	service := NewService(store, events)

	err := service.Signup(context.Background(), "Chess Club", "existing@mergington.edu")
	require.ErrorIs(t, err, ErrAlreadySignedUp)
	require.Empty(t, events.signups)
}

func TestSignupUnknownActivity(t *testing.T) {
	service := NewService(newStubStore(), nil)

	err := service.Signup(context.Background(), "Knitting Circle", "new@mergington.edu")
	require.ErrorIs(t, err, ErrActivityNotFound)
}

// Capacity is deliberately not checked on signup; the ceiling is
// informational only. This pins the behavior down so enforcing it later is
// a conscious change.
func TestSignupIgnoresCapacity(t *testing.T) {
	store := newStubStore()
	store.activities["Chess Club"].MaxParticipants = 1
	service := NewService(store, nil)

	err := service.Signup(context.Background(), "Chess Club", "overflow@mergington.edu")
	require.NoError(t, err)
	require.Negative(t, store.activities["Chess Club"].SpotsLeft())
}

func TestUnregisterNotifiesEvents(t *testing.T) {
	store := newStubStore()
	events := &recordingEvents{}
	service := NewService(store, events)

	err := service.Unregister(context.Background(), "Chess Club", "existing@mergington.edu")
	require.NoError(t, err)

	require.Len(t, events.unregisters, 1)
	require.Equal(t, "Chess Club", events.unregisters[0].activity)
	require.Equal(t, 0, events.unregisters[0].rosterSize)
}

func TestUnregisterAbsentParticipant(t *testing.T) {
	service := NewService(newStubStore(), nil)

	err := service.Unregister(context.Background(), "Chess Club", "ghost@mergington.edu")
	require.ErrorIs(t, err, ErrNotSignedUp)
}

func TestGetActivityNotFound(t *testing.T) {
	service := NewService(newStubStore(), nil)

	_, err := service.GetActivity(context.Background(), "Knitting Circle")
	require.ErrorIs(t, err, ErrActivityNotFound)
}

func TestSignupUnregisterRoundTrip(t *testing.T) {
	store := newStubStore()
	service := NewService(store, nil)
	ctx := context.Background()

	before := len(store.activities["Chess Club"].Participants)

	require.NoError(t, service.Signup(ctx, "Chess Club", "temp@mergington.edu"))
	require.Len(t, store.activities["Chess Club"].Participants, before+1)

	require.NoError(t, service.Unregister(ctx, "Chess Club", "temp@mergington.edu"))
	require.Len(t, store.activities["Chess Club"].Participants, before)
	require.False(t, store.activities["Chess Club"].HasParticipant("temp@mergington.edu"))
}

// stubStore is a minimal in-memory Store for exercising the service.
type stubStore struct {
	activities map[string]*Activity
}

func newStubStore() *stubStore {
	return &stubStore{
		activities: map[string]*Activity{
			"Chess Club": {
				Name:            "Chess Club",
				Description:     "Learn strategies and compete in chess tournaments",
				Schedule:        "Fridays, 3:30 PM - 5:00 PM",
				MaxParticipants: 12,
				Participants:    []string{"existing@mergington.edu"},
			},
		},
	}
}

func (s *stubStore) Snapshot(ctx context.Context) (map[string]Activity, error) {
	out := make(map[string]Activity, len(s.activities))
	for name, activity := range s.activities {
		out[name] = *activity
	}
	return out, nil
}

func (s *stubStore) Get(ctx context.Context, name string) (*Activity, error) {
	activity, ok := s.activities[name]
	if !ok {
		return nil, nil
	}
	copied := *activity
	return &copied, nil
}

func (s *stubStore) AddParticipant(ctx context.Context, name, email string) (*Activity, error) {
	activity, ok := s.activities[name]
	if !ok {
		return nil, ErrActivityNotFound
	}
	if activity.HasParticipant(email) {
		return nil, ErrAlreadySignedUp
	}
	activity.Participants = append(activity.Participants, email)
	copied := *activity
	return &copied, nil
}

func (s *stubStore) RemoveParticipant(ctx context.Context, name, email string) (*Activity, error) {
	activity, ok := s.activities[name]
	if !ok {
		return nil, ErrActivityNotFound
	}
	for i, p := range activity.Participants {
		if p == email {
			activity.Participants = append(activity.Participants[:i], activity.Participants[i+1:]...)
			copied := *activity
			return &copied, nil
		}
	}
	return nil, ErrNotSignedUp
}

type rosterCall struct {
	activity   string
	email      string
	rosterSize int
}

// recordingEvents captures notifications for assertions.
type recordingEvents struct {
	signups     []rosterCall
	unregisters []rosterCall
}

func (r *recordingEvents) SignedUp(ctx context.Context, activity, email string, rosterSize int) {
	r.signups = append(r.signups, rosterCall{activity, email, rosterSize})
}

func (r *recordingEvents) Unregistered(ctx context.Context, activity, email string, rosterSize int) {
	r.unregisters = append(r.unregisters, rosterCall{activity, email, rosterSize})
}
