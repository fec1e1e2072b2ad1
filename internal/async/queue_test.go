package async

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/entity"
)

type recordingProcessor struct {
	mu     sync.Mutex
	paths  []string
	forced map[string]bool
	ids    map[string]string
	delay  time.Duration
}

func (p *recordingProcessor) Process(ctx context.Context, path string, force bool) (*entity.Scan, error) {
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paths = append(p.paths, path)
	if p.forced == nil {
		p.forced = map[string]bool{}
		p.ids = map[string]string{}
	}
	p.forced[path] = force
	p.ids[path] = common.RequestIDFromContext(ctx)
	if path == "bad.png" {
		return nil, common.ErrExtraction
	}
	return &entity.Scan{ID: uuid.New(), SourcePath: path}, nil
}

func TestQueueProcessesAllJobs(t *testing.T) {
	proc := &recordingProcessor{delay: time.Millisecond}
	var mu sync.Mutex
	results := map[string]error{}
	q := NewProcessorQueue(proc, nil,
		WithWorkers(3),
		WithQueueSize(2),
		WithProcessTimeout(time.Second),
		WithResultHandler(func(job Job, _ *entity.Scan, err error) {
			mu.Lock()
			results[job.Path] = err
			mu.Unlock()
		}),
	)

	ctx := context.Background()
	for _, p := range []string{"a.txt", "b.jpg", "bad.png", "c.heic", "d.txt"} {
		require.NoError(t, q.Enqueue(ctx, Job{Path: p, Force: p == "d.txt", TraceID: "trace-" + p}))
	}
	q.Shutdown(ctx)

	assert.ElementsMatch(t, []string{"a.txt", "b.jpg", "bad.png", "c.heic", "d.txt"}, proc.paths)
	assert.True(t, proc.forced["d.txt"])
	assert.False(t, proc.forced["a.txt"])
	assert.Equal(t, "trace-b.jpg", proc.ids["b.jpg"])

	require.Len(t, results, 5)
	assert.True(t, errors.Is(results["bad.png"], common.ErrExtraction))
	assert.NoError(t, results["a.txt"])
}

func TestEnqueueAfterShutdown(t *testing.T) {
	q := NewProcessorQueue(&recordingProcessor{}, nil, WithWorkers(1))
	q.Shutdown(context.Background())
	q.Shutdown(context.Background())

	err := q.Enqueue(context.Background(), Job{Path: "late.txt"})
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestShutdownRespectsContext(t *testing.T) {
	q := NewProcessorQueue(&recordingProcessor{delay: 200 * time.Millisecond}, nil, WithWorkers(1))
	require.NoError(t, q.Enqueue(context.Background(), Job{Path: "slow.txt"}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	start := time.Now()
	q.Shutdown(ctx)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}

// blockingProcessor holds every job until release is closed.
type blockingProcessor struct {
	started chan string
	release chan struct{}
}

func newBlockingProcessor() *blockingProcessor {
	return &blockingProcessor{started: make(chan string, 8), release: make(chan struct{})}
}

func (p *blockingProcessor) Process(_ context.Context, path string, _ bool) (*entity.Scan, error) {
	p.started <- path
	<-p.release
	return &entity.Scan{ID: uuid.New(), SourcePath: path}, nil
}

// fullQueue returns a queue whose single worker is busy and whose buffer is full.
func fullQueue(t *testing.T) (*ProcessorQueue, *blockingProcessor) {
	t.Helper()
	proc := newBlockingProcessor()
	q := NewProcessorQueue(proc, nil, WithWorkers(1), WithQueueSize(1))
	require.NoError(t, q.Enqueue(context.Background(), Job{Path: "a.txt"}))
	select {
	case <-proc.started:
	case <-time.After(time.Second):
		t.Fatal("worker never picked up the first job")
	}
	require.NoError(t, q.Enqueue(context.Background(), Job{Path: "b.txt"}))
	t.Cleanup(func() {
		close(proc.release)
		q.Shutdown(context.Background())
	})
	return q, proc
}

func TestEnqueueCancelledContext(t *testing.T) {
	q, _ := fullQueue(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := q.Enqueue(ctx, Job{Path: "c.txt"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestEnqueueBackpressureHonoursDeadline(t *testing.T) {
	q, _ := fullQueue(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := q.Enqueue(ctx, Job{Path: "c.txt"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestShutdownReleasesBlockedEnqueue(t *testing.T) {
	q, _ := fullQueue(t)

	errs := make(chan error, 1)
	go func() { errs <- q.Enqueue(context.Background(), Job{Path: "c.txt"}) }()
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	q.Shutdown(ctx)
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrQueueClosed)
	case <-time.After(time.Second):
		t.Fatal("blocked enqueue was not released by shutdown")
	}
}

func TestShutdownDrainsAfterRelease(t *testing.T) {
	proc := newBlockingProcessor()
	var mu sync.Mutex
	var done []string
	q := NewProcessorQueue(proc, nil, WithWorkers(1), WithQueueSize(1),
		WithResultHandler(func(job Job, _ *entity.Scan, _ error) {
			mu.Lock()
			done = append(done, job.Path)
			mu.Unlock()
		}),
	)
	require.NoError(t, q.Enqueue(context.Background(), Job{Path: "a.txt"}))
	require.NoError(t, q.Enqueue(context.Background(), Job{Path: "b.txt"}))
	close(proc.release)
	q.Shutdown(context.Background())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a.txt", "b.txt"}, done)
}
