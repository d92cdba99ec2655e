// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const purgeTimeout = 5 * time.Minute

// Purger deletes exports created before a cutoff.
type Purger interface {
	PurgeExpired(ctx context.Context, before time.Time) (int, error)
}

// Janitor removes exports older than ttl on the given cron spec.
type Janitor struct {
	ctx    context.Context
	cron   *cron.Cron
	spec   string
	ttl    time.Duration
	purger Purger
	log    *slog.Logger
	now    func() time.Time
}

func New(ctx context.Context, spec string, ttl time.Duration, purger Purger, log *slog.Logger) *Janitor {
	return &Janitor{
		ctx:    ctx,
		cron:   cron.New(cron.WithLocation(time.UTC)),
		spec:   spec,
		ttl:    ttl,
		purger: purger,
		log:    log,
		now:    time.Now,
	}
}

func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.purge); err != nil {
		return err
	}

	j.cron.Start()
	j.log.Info("export janitor started", "spec", j.spec, "ttl", j.ttl.String())

	return nil
}

// Stop halts scheduling and waits for a running purge to finish or ctx to end.
func (j *Janitor) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (j *Janitor) purge() {
	ctx, cancel := context.WithTimeout(j.ctx, purgeTimeout)
	defer cancel()

	if ctx.Err() != nil {
		j.log.InfoContext(ctx, "janitor context is done", "error", ctx.Err())
		return
	}

	cutoff := j.now().Add(-j.ttl)
	n, err := j.purger.PurgeExpired(ctx, cutoff)
	if err != nil {
		j.log.ErrorContext(ctx, "purge expired exports failed",
			"error", err,
			"cutoff", cutoff,
			"purged", n)
		return
	}
	if n > 0 {
		j.log.InfoContext(ctx, "purged expired exports", "purged", n, "cutoff", cutoff)
	}
}
