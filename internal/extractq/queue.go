package extractq

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"mediascribe/internal/logging"
	"mediascribe/internal/media"
)

// Status is the lifecycle state of a queued job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ErrQueueClosed is returned to jobs still pending when the queue shuts down.
var ErrQueueClosed = errors.New("extraction queue closed")

// Runner executes one extraction job.
type Runner func(ctx context.Context, url string) (media.Record, error)

// Job is the handle returned at submission time. The queue owns the job from
// submission until it reaches a terminal state; callers only wait on it.
type Job struct {
	ID  string
	Key string
	URL string

	mu     sync.Mutex
	status Status
	record media.Record
	err    error
	done   chan struct{}
}

// Status returns the job's current lifecycle state.
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Wait blocks until the job reaches a terminal state or ctx is done. On
// completion it returns the job's record; on failure, its error.
func (j *Job) Wait(ctx context.Context) (media.Record, error) {
	select {
	case <-ctx.Done():
		return media.Record{}, ctx.Err()
	case <-j.done:
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.record, j.err
}

func (j *Job) complete(record media.Record, err error) {
	j.mu.Lock()
	if err != nil {
		j.status = StatusFailed
		j.err = err
	} else {
		j.status = StatusCompleted
		j.record = record
	}
	j.mu.Unlock()
	close(j.done)
}

func (j *Job) markRunning() {
	j.mu.Lock()
	j.status = StatusRunning
	j.mu.Unlock()
}

// Queue is a single-worker FIFO for extraction jobs.
type Queue struct {
	runner     Runner
	jobTimeout time.Duration
	logger     *slog.Logger

	mu      sync.Mutex
	pending []*Job
	active  map[string]*Job // pending or running jobs keyed by dedup key
	closed  bool

	wake chan struct{}
	stop chan struct{}
	wg   sync.WaitGroup
}

// Option customizes the queue.
type Option func(*Queue)

// WithJobTimeout bounds each job's execution. Zero disables the deadline.
func WithJobTimeout(timeout time.Duration) Option {
	return func(q *Queue) {
		q.jobTimeout = timeout
	}
}

// WithLogger attaches a logger for job lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) {
		q.logger = logger
	}
}

// New constructs a queue and starts its worker goroutine.
func New(runner Runner, opts ...Option) *Queue {
	q := &Queue{
		runner: runner,
		active: make(map[string]*Job),
		wake:   make(chan struct{}, 1),
		stop:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	q.logger = logging.NewComponentLogger(q.logger, "extractq")
	q.wg.Add(1)
	go q.work()
	return q
}

// Submit enqueues a job for url under a dedup key. If a job for the same key
// is already pending or running, that job's handle is returned instead of
// enqueueing a duplicate.
func (q *Queue) Submit(url, key string) *Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	if existing, ok := q.active[key]; ok {
		q.logger.Debug("job deduplicated", logging.Args(
			logging.String("key", key),
			logging.String("job_id", existing.ID))...)
		return existing
	}

	job := &Job{
		ID:     uuid.NewString(),
		Key:    key,
		URL:    url,
		status: StatusPending,
		done:   make(chan struct{}),
	}
	if q.closed {
		job.complete(media.Record{}, ErrQueueClosed)
		return job
	}

	q.pending = append(q.pending, job)
	q.active[key] = job
	q.logger.Debug("job submitted", logging.Args(
		logging.String("key", key),
		logging.String("job_id", job.ID),
		logging.Int("depth", len(q.pending)))...)

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return job
}

// Depth returns the number of jobs waiting to run.
func (q *Queue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close stops the worker after the current job finishes and fails all jobs
// still pending. Close blocks until the worker has exited.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.wg.Wait()
		return
	}
	q.closed = true
	drained := q.pending
	q.pending = nil
	for _, job := range drained {
		delete(q.active, job.Key)
	}
	q.mu.Unlock()

	for _, job := range drained {
		job.complete(media.Record{}, ErrQueueClosed)
	}
	close(q.stop)
	q.wg.Wait()
}

func (q *Queue) work() {
	defer q.wg.Done()
	for {
		job := q.next()
		if job == nil {
			select {
			case <-q.stop:
				return
			case <-q.wake:
				continue
			}
		}

		job.markRunning()
		q.logger.Debug("job running", logging.Args(
			logging.String("key", job.Key),
			logging.String("job_id", job.ID))...)

		record, err := q.runJob(job)

		q.mu.Lock()
		delete(q.active, job.Key)
		q.mu.Unlock()

		job.complete(record, err)
		if err != nil {
			q.logger.Warn("job failed", logging.Args(
				logging.String("key", job.Key),
				logging.String("job_id", job.ID),
				logging.Error(err))...)
		} else {
			q.logger.Debug("job completed", logging.Args(
				logging.String("key", job.Key),
				logging.String("job_id", job.ID))...)
		}
	}
}

func (q *Queue) next() *Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	job := q.pending[0]
	q.pending = q.pending[1:]
	return job
}

func (q *Queue) runJob(job *Job) (media.Record, error) {
	ctx := context.Background()
	if q.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.jobTimeout)
		defer cancel()
	}
	return q.runner(ctx, job.URL)
}
