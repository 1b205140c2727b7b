//go:build !integration

package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPool(3, nil)
	p.Start(ctx)
	defer p.Stop()

	var n atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		if err := p.SubmitWait(ctx, int64(i), func(ctx context.Context) error {
			defer wg.Done()
			n.Add(1)
			return nil
		}); err != nil {
			t.Fatalf("SubmitWait: %v", err)
		}
	}
	wg.Wait()
	if n.Load() != 10 {
		t.Fatalf("want 10 tasks run, got %d", n.Load())
	}
}

func TestPoolKeepsOrderPerKey(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPool(4, nil)
	p.Start(ctx)
	defer p.Stop()

	var mu sync.Mutex
	var got []int
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		i := i
		wg.Add(1)
		if err := p.SubmitWait(ctx, -1001234, func(context.Context) error {
			defer wg.Done()
			if i == 0 {
				// a slow first task must not be overtaken by later ones
				time.Sleep(50 * time.Millisecond)
			}
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			return nil
		}); err != nil {
			t.Fatalf("SubmitWait: %v", err)
		}
	}
	wg.Wait()
	for i, v := range got {
		if v != i {
			t.Fatalf("tasks for one key ran out of order: %v", got)
		}
	}
}

func TestPoolSlotIsStable(t *testing.T) {
	p := NewPool(8, nil)
	for _, key := range []int64{0, 1, 42, -1, -1001234567890} {
		s := p.slot(key)
		if s < 0 || s >= 8 {
			t.Fatalf("slot(%d) = %d out of range", key, s)
		}
		if p.slot(key) != s {
			t.Fatalf("slot(%d) is not stable", key)
		}
	}
}

func TestPoolSurvivesFailingAndPanickingTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPool(1, nil)
	p.Start(ctx)
	defer p.Stop()

	_ = p.SubmitWait(ctx, 1, func(context.Context) error { return errors.New("boom") })
	_ = p.SubmitWait(ctx, 1, func(context.Context) error { panic("handler bug") })

	done := make(chan struct{})
	_ = p.SubmitWait(ctx, 1, func(context.Context) error { close(done); return nil })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive a failing task")
	}
}

func TestPoolRejectsNilAndStopped(t *testing.T) {
	p := NewPool(1, nil)
	if err := p.SubmitWait(context.Background(), 1, nil); !errors.Is(err, ErrNilTask) {
		t.Fatalf("SubmitWait(nil): %v", err)
	}

	p.Start(context.Background())
	p.Stop()
	p.Stop() // safe twice

	if err := p.SubmitWait(context.Background(), 1, func(context.Context) error { return nil }); !errors.Is(err, ErrStopped) {
		t.Fatalf("SubmitWait after stop: %v", err)
	}
}

func TestPoolSubmitWaitHonoursContext(t *testing.T) {
	p := NewPool(1, nil) // not started: nothing drains the queue
	noop := func(context.Context) error { return nil }
	for i := 0; i < 4; i++ {
		if err := p.SubmitWait(context.Background(), 7, noop); err != nil {
			t.Fatalf("SubmitWait #%d: %v", i, err)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := p.SubmitWait(ctx, 7, noop); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded on a full queue, got %v", err)
	}
}
