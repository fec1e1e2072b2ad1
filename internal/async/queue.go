package async

import (
	"context"
	"time"

	"github.com/joseph-ayodele/cardscan/internal/entity"
)

// Job is one file waiting to be processed.
type Job struct {
	Path        string
	Force       bool // reprocess even if the content was seen before
	SubmittedAt time.Time
	TraceID     string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

// FileProcessor is satisfied by the pipeline processor.
type FileProcessor interface {
	Process(ctx context.Context, path string, force bool) (*entity.Scan, error)
}

// ResultHandler observes every finished job. It is called from worker goroutines.
type ResultHandler func(job Job, scan *entity.Scan, err error)
