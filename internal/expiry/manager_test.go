package expiry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/filerelay/service/internal/storage"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func putObject(t *testing.T, s *storage.Store, code string, expiresAt time.Time) *storage.StoredObject {
	t.Helper()
	obj := &storage.StoredObject{
		ID:          uuid.New(),
		ShortCode:   code,
		Payload:     []byte("x"),
		ContentType: "text/plain",
		Size:        1,
		CreatedAt:   expiresAt.Add(-time.Hour),
		ExpiresAt:   expiresAt,
	}
	if err := s.Put(obj); err != nil {
		t.Fatalf("Put: %v", err)
	}
	return obj
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestSweep_RemovesOnlyExpired(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := storage.NewStore()
	putObject(t, s, "OLD001", clock.Now().Add(-time.Minute))
	putObject(t, s, "OLD002", clock.Now().Add(-time.Second))
	live := putObject(t, s, "NEW001", clock.Now().Add(time.Hour))

	m := New(s, WithClock(clock.Now))
	if n := m.Sweep(); n != 2 {
		t.Errorf("Sweep() = %d, want 2", n)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if got, _ := s.GetByCode("NEW001"); got == nil || got.ID != live.ID {
		t.Error("live object was evicted")
	}
}

func TestRun_EvictsWithoutAccess(t *testing.T) {
	s := storage.NewStore()
	obj := putObject(t, s, "EAGER1", time.Now().Add(50*time.Millisecond))

	m := New(s, WithSweepInterval(time.Hour))
	m.Schedule(obj.ID, obj.ExpiresAt)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	waitFor(t, 2*time.Second, func() bool { return s.Len() == 0 })

	if time.Now().Before(obj.ExpiresAt) {
		t.Error("object evicted before its deadline")
	}
	waitFor(t, time.Second, func() bool { return m.Pending() == 0 })
}

func TestRun_DeadlineAfterLazyEvictionIsHarmless(t *testing.T) {
	s := storage.NewStore()
	gone := putObject(t, s, "LAZY01", time.Now().Add(20*time.Millisecond))
	keep := putObject(t, s, "KEEP01", time.Now().Add(time.Hour))

	m := New(s, WithSweepInterval(time.Hour))
	m.Schedule(gone.ID, gone.ExpiresAt)
	m.Schedule(keep.ID, keep.ExpiresAt)

	// Simulate the access path evicting first.
	s.Remove(gone.ID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	waitFor(t, 2*time.Second, func() bool { return m.Pending() == 1 })
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestRun_ScheduleWakesLoop(t *testing.T) {
	s := storage.NewStore()
	m := New(s, WithSweepInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx)

	// Scheduled after the loop is already idle with an empty queue.
	time.Sleep(20 * time.Millisecond)
	obj := putObject(t, s, "LATE01", time.Now().Add(30*time.Millisecond))
	m.Schedule(obj.ID, obj.ExpiresAt)

	waitFor(t, 2*time.Second, func() bool { return s.Len() == 0 })
}

func TestRun_FinalSweepOnShutdown(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := storage.NewStore()
	putObject(t, s, "SHUT01", clock.Now().Add(3*time.Hour))

	m := New(s, WithClock(clock.Now), WithSweepInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	clock.Advance(4 * time.Hour)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after shutdown sweep, want 0", s.Len())
	}
}

func TestSchedule_OrdersByDeadline(t *testing.T) {
	m := New(storage.NewStore())
	base := time.Now()
	m.Schedule(uuid.New(), base.Add(3*time.Second))
	m.Schedule(uuid.New(), base.Add(time.Second))
	m.Schedule(uuid.New(), base.Add(2*time.Second))

	next, ok := m.next()
	if !ok {
		t.Fatal("queue unexpectedly empty")
	}
	if !next.Equal(base.Add(time.Second)) {
		t.Errorf("next deadline = %v, want %v", next, base.Add(time.Second))
	}
	if m.Pending() != 3 {
		t.Errorf("Pending() = %d, want 3", m.Pending())
	}
}

func TestFireDue_LiveAtExactDeadline(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := storage.NewStore()
	obj := putObject(t, s, "EDGE01", clock.Now())

	m := New(s, WithClock(clock.Now))
	m.Schedule(obj.ID, obj.ExpiresAt)

	m.fireDue()
	if s.Len() != 1 || m.Pending() != 1 {
		t.Fatalf("evicted at the deadline: Len() = %d, Pending() = %d", s.Len(), m.Pending())
	}
	if obj.ExpiredAt(clock.Now()) {
		t.Fatal("ExpiredAt disagrees: object reported dead at the deadline")
	}

	clock.Advance(time.Nanosecond)
	m.fireDue()
	if s.Len() != 0 || m.Pending() != 0 {
		t.Errorf("not evicted past the deadline: Len() = %d, Pending() = %d", s.Len(), m.Pending())
	}
}
