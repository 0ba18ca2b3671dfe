package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

const chat = "972501234567@c.us"

func TestCreateSessionIsNotStored(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	s := store.CreateSession(chat)

	assert.Equal(t, FlowAddProduct, s.Flow)
	assert.Equal(t, StepName, s.Step)
	assert.Nil(t, s.Data.Name)
	assert.Nil(t, s.Data.Price)
	assert.Nil(t, s.Data.Stock)

	_, ok := store.Get(chat)
	assert.False(t, ok)
}

func TestSetRefreshesExpiry(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(5*time.Minute, WithClock(clock.Now))

	store.Set(chat, store.CreateSession(chat))
	clock.Advance(4 * time.Minute)

	s, ok := store.Get(chat)
	require.True(t, ok)
	s.Step = StepPrice
	store.Set(chat, s)

	clock.Advance(4 * time.Minute)
	got, ok := store.Get(chat)
	require.True(t, ok, "write should extend the session")
	assert.Equal(t, StepPrice, got.Step)
	assert.Equal(t, clock.Now().Add(time.Minute), got.ExpiresAt)
}

func TestGetEvictsExpired(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(time.Second, WithClock(clock.Now))
	store.Set(chat, store.CreateSession(chat))

	clock.Advance(time.Second)
	_, ok := store.Get(chat)
	assert.True(t, ok, "exactly at expiry the session is still live")

	clock.Advance(time.Millisecond)
	_, ok = store.Get(chat)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestGetReturnsCopy(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	s := store.CreateSession(chat)
	name := "Widget"
	s.Data.Name = &name
	store.Set(chat, s)

	got, ok := store.Get(chat)
	require.True(t, ok)
	*got.Data.Name = "changed"

	again, _ := store.Get(chat)
	assert.Equal(t, "Widget", *again.Data.Name)
}

func TestDeleteAndCleanup(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(time.Minute, WithClock(clock.Now))

	store.Delete("missing@c.us")

	store.Set("a@c.us", store.CreateSession("a@c.us"))
	store.Set("b@c.us", store.CreateSession("b@c.us"))
	clock.Advance(30 * time.Second)
	store.Set("c@c.us", store.CreateSession("c@c.us"))
	clock.Advance(45 * time.Second)

	assert.Equal(t, 2, store.Cleanup())
	assert.Equal(t, 1, store.Len())
	_, ok := store.Get("c@c.us")
	assert.True(t, ok)

	store.Delete("c@c.us")
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 0, store.Cleanup())
}

func TestLockSerialisesSameChat(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	store.Set(chat, store.CreateSession(chat))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := store.Lock(chat)
			defer unlock()
			s, ok := store.Get(chat)
			if !ok {
				return
			}
			n := 0
			if s.Data.Stock != nil {
				n = *s.Data.Stock
			}
			n++
			s.Data.Stock = &n
			store.Set(chat, s)
		}()
	}
	wg.Wait()

	s, ok := store.Get(chat)
	require.True(t, ok)
	require.NotNil(t, s.Data.Stock)
	assert.Equal(t, 50, *s.Data.Stock)

	store.locksMu.Lock()
	assert.Empty(t, store.locks)
	store.locksMu.Unlock()
}

func TestLockDistinctChatsDoNotBlock(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	unlockA := store.Lock("a@c.us")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := store.Lock("b@c.us")
		unlock()
		unlock()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different chat blocked")
	}
}

func TestJanitorSweeps(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(time.Millisecond, WithClock(clock.Now))
	store.Set(chat, store.CreateSession(chat))
	clock.Advance(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Janitor(ctx, store, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestJanitorDisabled(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	Janitor(context.Background(), store, 0)
}
