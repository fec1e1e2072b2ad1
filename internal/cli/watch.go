package cli

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/cardscan/internal/async"
	"github.com/joseph-ayodele/cardscan/internal/entity"
	"github.com/joseph-ayodele/cardscan/internal/ingest"
)

func (a *app) watchCmd() *cobra.Command {
	var debounce time.Duration
	var initial bool
	cmd := &cobra.Command{
		Use:   "watch <dir>...",
		Short: "Process cards as they appear in one or more directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			proc, _, closeDB, err := a.newProcessor(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			out := cmd.OutOrStdout()
			var mu sync.Mutex
			q := async.NewProcessorQueue(proc, a.logger,
				async.WithWorkers(a.cfg.Queue.Workers),
				async.WithQueueSize(a.cfg.Queue.Size),
				async.WithProcessTimeout(a.cfg.Queue.ProcessTimeout),
				async.WithResultHandler(func(job async.Job, scan *entity.Scan, err error) {
					mu.Lock()
					defer mu.Unlock()
					if err != nil {
						_, _ = fmt.Fprintf(out, "FAILED\t%s\t%v\n", job.Path, err)
						return
					}
					_, _ = fmt.Fprintf(out, "%s\t%s\t%s\n", scan.Status, job.Path, scan.Contact.FullName())
				}),
			)
			defer q.Shutdown(cmd.Context())

			events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
				Roots:       args,
				InitialScan: initial,
				SkipHidden:  true,
				Debounce:    debounce,
				Logger:      a.logger,
			})
			if err != nil {
				return err
			}
			for {
				select {
				case p, ok := <-events:
					if !ok {
						return nil
					}
					if err := q.Enqueue(ctx, async.Job{Path: p}); err != nil {
						return err
					}
				case err, ok := <-errs:
					if !ok {
						errs = nil
						continue
					}
					a.logger.Warn("watch error", "error", err)
				}
			}
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "coalesce bursts of file events")
	cmd.Flags().BoolVar(&initial, "initial-scan", false, "process files already present")
	return cmd
}
