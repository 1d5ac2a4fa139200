package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHub(t *testing.T) {
	t.Run("publish reaches subscribers of the same collection only", func(t *testing.T) {
		h := NewHub()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		expenses := h.Subscribe(ctx, CollectionExpenses)
		inventory := h.Subscribe(ctx, CollectionInventory)

		h.Publish(CollectionExpenses)

		select {
		case <-expenses:
		case <-time.After(time.Second):
			t.Fatal("expected a signal on expenses")
		}
		select {
		case <-inventory:
			t.Fatal("inventory subscriber should not be signalled")
		default:
		}
	})

	t.Run("bursts are coalesced", func(t *testing.T) {
		h := NewHub()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch := h.Subscribe(ctx, CollectionSettlements)
		for range 5 {
			h.Publish(CollectionSettlements)
		}

		<-ch
		select {
		case <-ch:
			t.Fatal("expected a single pending signal")
		default:
		}
	})

	t.Run("cancel closes and unregisters", func(t *testing.T) {
		h := NewHub()
		ctx, cancel := context.WithCancel(context.Background())
		ch := h.Subscribe(ctx, CollectionExpenses)
		cancel()

		select {
		case _, ok := <-ch:
			if ok {
				// a stale signal is fine; the next receive must see the close
				if _, ok := <-ch; ok {
					t.Fatal("channel not closed")
				}
			}
		case <-time.After(time.Second):
			t.Fatal("channel not closed after cancel")
		}
		if n := h.Subscribers(CollectionExpenses); n != 0 {
			t.Errorf("Subscribers() = %d, want 0", n)
		}
		h.Publish(CollectionExpenses) // must not panic on a closed channel
	})
}

func TestUnavailableError(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := Unavailable("insert expense", cause)

	if !errors.Is(err, ErrUnavailable) {
		t.Error("expected errors.Is(err, ErrUnavailable)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected the cause to be unwrappable")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("unavailable must not match ErrNotFound")
	}
	if !errors.Is(NotFound(CollectionExpenses, "x"), ErrNotFound) {
		t.Error("NotFound should wrap ErrNotFound")
	}
}
