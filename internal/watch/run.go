package watch

import (
	"context"
	"time"

	"extsort/internal/log"
	"extsort/internal/organize"
	"extsort/internal/report"
)

// DefaultDebounce is how long events must be quiet before a new pass runs.
const DefaultDebounce = 500 * time.Millisecond

// Runner keeps a directory organized.
type Runner struct {
	Organizer organize.Organizer
	Dir       string
	Sink      report.Sink
	Debounce  time.Duration
}

// Run organizes dir once and then again after every burst of new files,
// until ctx is cancelled.
func Run(ctx context.Context, organizer organize.Organizer, dir string, sink report.Sink) error {
	r := &Runner{Organizer: organizer, Dir: dir, Sink: sink, Debounce: DefaultDebounce}
	return r.Run(ctx)
}

// Run starts watching, performs the initial pass and blocks until ctx is
// done. Errors about the directory itself end the run; per-file failures are
// only reported through the sink.
func (r *Runner) Run(ctx context.Context) error {
	w, err := New(r.Dir)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	if err := r.pass(true); err != nil {
		return err
	}

	debounce := r.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case mod, ok := <-w.Events():
			if !ok {
				return nil
			}
			log.LogWithFields(log.F("file", mod.Path), log.F("op", mod.Op.String())).Debug("File event")
			timer.Reset(debounce)
		case <-timer.C:
			if err := r.pass(false); err != nil {
				return err
			}
		}
	}
}

// pass runs one organization. Empty passes after the first are not reported.
func (r *Runner) pass(first bool) error {
	results, err := r.Organizer.Organize(r.Dir)
	if err != nil {
		log.LogWithError(err).Error("Organization failed")
		return err
	}
	if len(results) == 0 && !first {
		return nil
	}
	return r.Sink.Render(results, r.Organizer.IsDryRun())
}
