package cli

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/cardscan/internal/async"
	"github.com/joseph-ayodele/cardscan/internal/entity"
	"github.com/joseph-ayodele/cardscan/internal/export"
	"github.com/joseph-ayodele/cardscan/internal/ingest"
)

func (a *app) batchCmd() *cobra.Command {
	var format, out string
	var workers int
	var skipHidden, force bool
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Process every card under a directory and export the contacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			paths, stats, err := ingest.WalkDirectory(args[0], skipHidden)
			if err != nil {
				return err
			}
			proc, _, closeDB, err := a.newProcessor(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			if workers <= 0 {
				workers = a.cfg.Queue.Workers
			}
			var mu sync.Mutex
			var scans []*entity.Scan
			q := async.NewProcessorQueue(proc, a.logger,
				async.WithWorkers(workers),
				async.WithQueueSize(a.cfg.Queue.Size),
				async.WithProcessTimeout(a.cfg.Queue.ProcessTimeout),
				async.WithResultHandler(func(_ async.Job, scan *entity.Scan, err error) {
					mu.Lock()
					defer mu.Unlock()
					switch {
					case err != nil:
						stats.Failed++
					case scan.NeedsReview:
						stats.Succeeded++
						stats.NeedsReview++
						scans = append(scans, scan)
					default:
						stats.Succeeded++
						scans = append(scans, scan)
					}
				}),
			)
			start := time.Now()
			for _, p := range paths {
				if err := q.Enqueue(ctx, async.Job{Path: p, Force: force}); err != nil {
					q.Shutdown(ctx)
					return err
				}
			}
			q.Shutdown(ctx)
			if err := ctx.Err(); err != nil {
				return err
			}

			mu.Lock()
			summary := stats
			done := append([]*entity.Scan(nil), scans...)
			mu.Unlock()

			sort.Slice(done, func(i, j int) bool { return done[i].SourcePath < done[j].SourcePath })
			contacts := make([]entity.ParsedContact, 0, len(done))
			for _, s := range done {
				contacts = append(contacts, s.Contact)
			}
			a.logger.Info("batch complete",
				"root", args[0],
				"matched", summary.Matched,
				"succeeded", summary.Succeeded,
				"needs_review", summary.NeedsReview,
				"failed", summary.Failed,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			if summary.Matched > 0 && summary.Succeeded == 0 {
				return fmt.Errorf("all %d files failed", summary.Matched)
			}

			w, closeOut, err := openOutput(cmd.OutOrStdout(), out)
			if err != nil {
				return err
			}
			if err := export.Write(w, format, contacts); err != nil {
				_ = closeOut()
				return err
			}
			return closeOut()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: json, yaml, vcard, csv, xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel workers (default from config)")
	cmd.Flags().BoolVar(&skipHidden, "skip-hidden", true, "skip hidden files and directories")
	cmd.Flags().BoolVar(&force, "force", false, "reprocess files whose content was stored before")
	return cmd
}
