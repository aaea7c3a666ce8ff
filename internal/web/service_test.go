package web

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/theirongolddev/budgetboard/internal/session"
	"github.com/theirongolddev/budgetboard/internal/store"
)

func newService(t *testing.T, now time.Time, buffer int) *Service {
	t.Helper()
	ctrl := session.New(store.NewMemory(), session.Options{
		Payday: 25,
		Now:    func() time.Time { return now },
		Logger: zerolog.Nop(),
	})
	return New(ctrl, Config{EventsBuffer: buffer, Locale: "en"}, zerolog.Nop())
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := newService(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 2)

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestControllerChangesBecomeEvents(t *testing.T) {
	s := newService(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 10)
	ch := make(chan Event, 4)
	s.addSubscriber(ch)

	if err := s.ctrl.AddFixedExpense(context.Background(), "Rent", dec("8000")); err != nil {
		t.Fatalf("AddFixedExpense: %v", err)
	}

	select {
	case ev := <-ch:
		if ev.ID != 1 || ev.Table != store.FixedExpenses.Name || ev.Action != "add fixed expense" {
			t.Fatalf("event = %+v", ev)
		}
	default:
		t.Fatal("subscriber received no event")
	}

	st := s.status(context.Background())
	if st.EventCount != 1 || st.SubscriberCount != 1 {
		t.Fatalf("status = %+v, want 1 event and 1 subscriber", st)
	}
}
