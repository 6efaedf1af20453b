// Package worker runs fire-and-forget persistence jobs on a fixed set of
// goroutines. Submitters never wait for a job; failures are reported through
// the job's error handler once retries are exhausted.
package worker

import (
	"context"
	"errors"
	"hash/fnv"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/avast/retry-go"
)

var ErrPoolClosed = errors.New("worker pool closed")

// Job is a unit of work submitted to the Pool.
type Job struct {
	Name string
	// Key orders jobs: jobs sharing a key run one at a time, retries
	// included, in the order they were submitted. Jobs without a key are
	// spread across workers.
	Key string
	Run func(ctx context.Context) error
	// OnError is called once when the job has failed every attempt.
	OnError func(err error)
}

type Options struct {
	Workers int
	// Queue is the buffer of each worker.
	Queue         int
	RetryAttempts uint
	RetryDelay    time.Duration
}

// Pool owns the context its jobs run with. It stays live until Close has
// drained every queued job, so shutting down never aborts accepted work.
type Pool struct {
	queues  []chan Job
	next    atomic.Uint64
	wg      sync.WaitGroup
	opts    Options
	ctx     context.Context
	cancel  context.CancelFunc
	closeMu sync.Mutex
	closed  bool
}

func NewPool(opts Options) *Pool {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Queue <= 0 {
		opts.Queue = 2
	}
	if opts.RetryAttempts == 0 {
		opts.RetryAttempts = 1
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 100 * time.Millisecond
	}

	queues := make([]chan Job, opts.Workers)
	for i := range queues {
		queues[i] = make(chan Job, opts.Queue)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		queues: queues,
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches one worker per queue. They drain their queue until Close
// is called.
func (p *Pool) Start() {
	for _, queue := range p.queues {
		p.wg.Add(1)
		go func(queue <-chan Job) {
			defer p.wg.Done()
			for job := range queue {
				p.run(job)
			}
		}(queue)
	}
}

func (p *Pool) run(job Job) {
	err := retry.Do(
		func() error {
			return job.Run(p.ctx)
		},
		retry.Context(p.ctx),
		retry.Attempts(p.opts.RetryAttempts),
		retry.Delay(p.opts.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Info("retrying job",
				slog.String("job", job.Name),
				slog.String("key", job.Key),
				slog.Uint64("attempt", uint64(n+1)),
				slog.Any("error", err),
			)
		}),
	)
	if err == nil {
		return
	}

	slog.Default().Error("job failed",
		slog.String("job", job.Name),
		slog.String("key", job.Key),
		slog.Any("error", err),
	)
	if job.OnError != nil {
		job.OnError(err)
	}
}

func (p *Pool) queueFor(job Job) chan Job {
	if job.Key == "" {
		return p.queues[p.next.Add(1)%uint64(len(p.queues))]
	}
	h := fnv.New32a()
	h.Write([]byte(job.Key))
	return p.queues[h.Sum32()%uint32(len(p.queues))]
}

// Submit enqueues a job. It blocks only while the job's queue is full.
func (p *Pool) Submit(job Job) error {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.queueFor(job) <- job
	return nil
}

// Close stops accepting jobs and waits for queued jobs to finish.
func (p *Pool) Close() {
	p.closeMu.Lock()
	if p.closed {
		p.closeMu.Unlock()
		return
	}
	p.closed = true
	for _, queue := range p.queues {
		close(queue)
	}
	p.closeMu.Unlock()

	p.wg.Wait()
	p.cancel()
}
