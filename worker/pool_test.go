package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RunsJobs(t *testing.T) {
	p := NewPool(Options{Workers: 3, Queue: 4})
	p.Start()

	var count atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Submit(Job{Name: "count", Run: func(ctx context.Context) error {
			count.Add(1)
			return nil
		}}))
	}
	p.Close()

	assert.Equal(t, int32(10), count.Load())
}

func TestPool_Retries(t *testing.T) {
	tests := []struct {
		name       string
		failures   int32
		wantCalls  int32
		wantFailed bool
	}{
		{name: "succeeds after a transient failure", failures: 1, wantCalls: 2},
		{name: "reports once retries are exhausted", failures: 10, wantCalls: 3, wantFailed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPool(Options{Workers: 1, RetryAttempts: 3, RetryDelay: time.Millisecond})
			p.Start()

			var calls atomic.Int32
			var mu sync.Mutex
			var reported []error
			require.NoError(t, p.Submit(Job{
				Name: "flaky",
				Run: func(ctx context.Context) error {
					if calls.Add(1) <= tt.failures {
						return errors.New("backend unavailable")
					}
					return nil
				},
				OnError: func(err error) {
					mu.Lock()
					defer mu.Unlock()
					reported = append(reported, err)
				},
			}))
			p.Close()

			assert.Equal(t, tt.wantCalls, calls.Load())
			if tt.wantFailed {
				require.Len(t, reported, 1)
				assert.EqualError(t, reported[0], "backend unavailable")
			} else {
				assert.Empty(t, reported)
			}
		})
	}
}

func TestPool_SubmitAfterClose(t *testing.T) {
	p := NewPool(Options{})
	p.Start()
	p.Close()
	p.Close()

	err := p.Submit(Job{Name: "late", Run: func(ctx context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestPool_KeyedJobsRunInSubmitOrder(t *testing.T) {
	p := NewPool(Options{Workers: 4, Queue: 8, RetryAttempts: 3, RetryDelay: 5 * time.Millisecond})
	p.Start()

	var mu sync.Mutex
	var applied []int
	var failedOnce atomic.Bool
	for i := 0; i < 5; i++ {
		i := i
		require.NoError(t, p.Submit(Job{
			Name: "write",
			Key:  "set:42",
			Run: func(ctx context.Context) error {
				if i == 0 && failedOnce.CompareAndSwap(false, true) {
					return errors.New("transient")
				}
				mu.Lock()
				defer mu.Unlock()
				applied = append(applied, i)
				return nil
			},
		}))
	}
	p.Close()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, applied)
}

func TestPool_CloseDrainsWithLiveContext(t *testing.T) {
	p := NewPool(Options{Workers: 2, Queue: 8})
	p.Start()

	release := make(chan struct{})
	var mu sync.Mutex
	var ctxErrs []error
	record := func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		ctxErrs = append(ctxErrs, ctx.Err())
		return ctx.Err()
	}
	require.NoError(t, p.Submit(Job{Name: "slow", Key: "a", Run: func(ctx context.Context) error {
		<-release
		return record(ctx)
	}}))
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Submit(Job{Name: "queued", Key: "a", Run: record}))
	}

	closed := make(chan struct{})
	go func() {
		p.Close()
		close(closed)
	}()
	close(release)
	<-closed

	require.Len(t, ctxErrs, 4)
	for _, err := range ctxErrs {
		assert.NoError(t, err)
	}
	assert.Error(t, p.ctx.Err(), "the pool context ends once the queue is drained")
}
