package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type stubWriter struct {
	messages chan kafka.Message
	err      error
	closed   bool
}

func newStubWriter() *stubWriter {
	return &stubWriter{messages: make(chan kafka.Message, 8)}
}

func (s *stubWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	for _, msg := range msgs {
		s.messages <- msg
	}
	return s.err
}

func (s *stubWriter) Close() error {
	s.closed = true
	return nil
}

func waitForMessage(t *testing.T, w *stubWriter) kafka.Message {
	t.Helper()
	select {
	case msg := <-w.messages:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published message")
		return kafka.Message{}
	}
}

func TestSignedUpPublishesRosterEvent(t *testing.T) {
	now := time.Date(2026, time.March, 14, 15, 0, 0, 0, time.UTC)
	writer := newStubWriter()
	publisher := NewKafkaPublisher(nil, "roster_events", time.Second,
		withWriter(writer), WithClock(func() time.Time { return now }))

	publisher.SignedUp(context.Background(), "Chess Club", "new@mergington.edu", 3)

	msg := waitForMessage(t, writer)
	require.Equal(t, "Chess Club", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	require.Equal(t, "event_type", msg.Headers[0].Key)
	require.Equal(t, TypeSignedUp, string(msg.Headers[0].Value))

	var event RosterChanged
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	require.NotEmpty(t, event.EventID)
	require.Equal(t, "Chess Club", event.Activity)
	require.Equal(t, "new@mergington.edu", event.Email)
	require.Equal(t, 3, event.RosterSize)
	require.Equal(t, now, event.OccurredAt)
}

func TestUnregisteredPublishesRosterEvent(t *testing.T) {
	writer := newStubWriter()
	publisher := NewKafkaPublisher(nil, "roster_events", time.Second, withWriter(writer))

	publisher.Unregistered(context.Background(), "Debate Team", "ava@mergington.edu", 1)

	msg := waitForMessage(t, writer)
	require.Equal(t, TypeUnregistered, string(msg.Headers[0].Value))

	var event RosterChanged
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	require.Equal(t, "Debate Team", event.Activity)
	require.Equal(t, 1, event.RosterSize)
}

func TestPublishFailureIsLoggedNotRaised(t *testing.T) {
	writer := newStubWriter()
	writer.err = errors.New("broker unavailable")

	var buf bytes.Buffer
	logged := make(chan struct{}, 1)
	logger := log.New(writerFunc(func(p []byte) (int, error) {
		n, err := buf.Write(p)
		select {
		case logged <- struct{}{}:
		default:
		}
		return n, err
	}), "", 0)

	publisher := NewKafkaPublisher(nil, "roster_events", time.Second,
		withWriter(writer), WithLogger(logger))

	publisher.SignedUp(context.Background(), "Chess Club", "new@mergington.edu", 3)
	waitForMessage(t, writer)

	select {
	case <-logged:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for failure log")
	}
	require.Contains(t, buf.String(), "publish roster.signed_up")
}

func TestCloseReleasesWriter(t *testing.T) {
	writer := newStubWriter()
	publisher := NewKafkaPublisher(nil, "roster_events", time.Second, withWriter(writer))

	require.NoError(t, publisher.Close())
	require.True(t, writer.closed)
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) {
	return f(p)
}
