// Package reaper permanently removes soft-deleted rows once they have sat in
// the recently-deleted area longer than the retention window. It never
// touches balances: a soft-deleted transaction's effect was reversed when it
// was deleted.
package reaper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"wealthcheck/internal/config"
	"wealthcheck/internal/repositories"

	"github.com/google/uuid"
)

// Result counts the rows removed by one run.
type Result struct {
	RunID        string
	Transactions int64
	Wallets      int64
	Categories   int64
}

type Reaper struct {
	repo      repositories.CleanupRepository
	retention time.Duration
	runAt     clock
	loc       *time.Location
	now       func() time.Time

	stop chan struct{}
	wg   sync.WaitGroup
	mu   sync.Mutex
}

type clock struct {
	hour, minute int
}

func New(repo repositories.CleanupRepository, cfg config.ReaperConfig) (*Reaper, error) {
	runAt, err := parseClock(cfg.RunAt)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid reaper timezone %q: %w", cfg.TimeZone, err)
	}
	if cfg.Retention <= 0 {
		return nil, fmt.Errorf("reaper retention must be positive, got %s", cfg.Retention)
	}

	return &Reaper{
		repo:      repo,
		retention: cfg.Retention,
		runAt:     runAt,
		loc:       loc,
		now:       time.Now,
	}, nil
}

// RunOnce runs the three sweeps. Each sweep is independent; a failing one does
// not stop the others and all failures are returned joined.
func (r *Reaper) RunOnce(ctx context.Context) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	cutoff := r.now().Add(-r.retention)

	sweeps := []struct {
		name  string
		run   func(context.Context, time.Time) (int64, error)
		count *int64
	}{
		{"transactions", r.repo.RemoveTransactions, &res.Transactions},
		{"wallets", r.repo.RemoveWallets, &res.Wallets},
		{"categories", r.repo.RemoveCategories, &res.Categories},
	}

	var errs []error
	for _, sweep := range sweeps {
		n, err := sweep.run(ctx, cutoff)
		if err != nil {
			log.Printf("[Reaper %s] %s sweep failed: %v", res.RunID, sweep.name, err)
			errs = append(errs, fmt.Errorf("%s: %w", sweep.name, err))
			continue
		}
		*sweep.count = n
	}

	log.Printf("[Reaper %s] Removed %d transactions, %d wallets, %d categories deleted before %s",
		res.RunID, res.Transactions, res.Wallets, res.Categories, cutoff.Format(time.RFC3339))
	return res, errors.Join(errs...)
}

// Start runs RunOnce every day at the configured local time until Stop or ctx
// cancellation.
func (r *Reaper) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stop != nil {
		return
	}
	r.stop = make(chan struct{})
	r.wg.Add(1)
	go r.loop(ctx, r.stop)

	log.Printf("[Reaper] Scheduled daily at %02d:%02d %s, retention %s",
		r.runAt.hour, r.runAt.minute, r.loc, r.retention)
}

func (r *Reaper) Stop() {
	r.mu.Lock()
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Reaper) loop(ctx context.Context, stop <-chan struct{}) {
	defer r.wg.Done()

	for {
		now := r.now()
		timer := time.NewTimer(nextRun(now, r.runAt, r.loc).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
			if _, err := r.RunOnce(ctx); err != nil {
				log.Printf("[Reaper] Run finished with errors: %v", err)
			}
		}
	}
}

// nextRun returns the first occurrence of at in loc strictly after now.
func nextRun(now time.Time, at clock, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), at.hour, at.minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, at.hour, at.minute, 0, 0, loc)
	}
	return next
}

func parseClock(s string) (clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return clock{}, fmt.Errorf("invalid reaper run time %q, want HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return clock{}, fmt.Errorf("invalid reaper hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return clock{}, fmt.Errorf("invalid reaper minute in %q", s)
	}
	return clock{hour: hour, minute: minute}, nil
}
