package widget

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/iafluence/chatwidget/internal/domain"
)

// Store is the append-only conversation log of one widget.
// It is not safe for concurrent use; the widget serializes access.
type Store struct {
	now      func() time.Time
	messages []domain.Message
	ids      map[string]struct{}
}

// NewStore creates an empty store. A nil clock means time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{now: now, ids: make(map[string]struct{})}
}

// Append records a new message and returns it.
func (s *Store) Append(sender domain.Sender, content string) domain.Message {
	now := s.now()
	id := messageID(now)
	for attempt := 0; s.has(id); attempt++ {
		if attempt < 8 {
			id = messageID(now)
		} else {
			id = fmt.Sprintf("%s-%d", messageID(now), len(s.messages))
		}
	}
	s.ids[id] = struct{}{}

	msg := domain.Message{
		ID:        id,
		Sender:    sender,
		Content:   content,
		Timestamp: now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	s.messages = append(s.messages, msg)
	return msg
}

// Snapshot returns a copy of the log in insertion order.
func (s *Store) Snapshot() []domain.Message {
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages appended so far.
func (s *Store) Len() int {
	return len(s.messages)
}

func (s *Store) has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func messageID(t time.Time) string {
	return fmt.Sprintf("msg-%d-%d", t.UnixMilli(), rand.Intn(1000))
}
