package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prashikshan/newstrends/app/article"
	"github.com/prashikshan/newstrends/app/cache"
)

// ErrAlreadyRunning signals that a refresh is still in flight.
var ErrAlreadyRunning = errors.New("refresh already in progress")

// Source produces fresh articles for one feed category.
type Source interface {
	Aggregate(ctx context.Context, category string) ([]article.Article, error)
}

// Status is a point-in-time view of the refresh, served on the admin surface.
type Status struct {
	Running     bool       `json:"running"`
	StartedAt   *time.Time `json:"started_at"`
	Progress    int        `json:"progress"`
	CurrentTask string     `json:"current_task"`
	LastError   string     `json:"last_error"`
}

// Runner refreshes cached categories in the background, at most one run at a
// time. Concurrent triggers get ErrAlreadyRunning instead of a second run.
type Runner struct {
	source Source
	cache  *cache.Cache

	running atomic.Bool

	mu          sync.Mutex
	startedAt   time.Time
	progress    int
	currentTask string
	lastError   string
}

func NewRunner(source Source, c *cache.Cache) *Runner {
	return &Runner{source: source, cache: c}
}

// Trigger starts a background refresh of the given categories and returns
// immediately. Only one refresh runs at a time.
func (r *Runner) Trigger(categories []string, syncRemote bool) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	r.mu.Lock()
	r.startedAt = time.Now().UTC()
	r.progress = 0
	r.currentTask = "starting"
	r.lastError = ""
	r.mu.Unlock()

	go r.run(categories, syncRemote)
	return nil
}

func (r *Runner) run(categories []string, syncRemote bool) {
	defer r.running.Store(false)

	start := time.Now()
	ctx := context.Background()
	slog.Info("Background refresh started", "categories", len(categories))

	for i, category := range categories {
		r.setProgress(i*100/len(categories), fmt.Sprintf("refreshing %s", category))

		articles, err := r.source.Aggregate(ctx, category)
		if err != nil {
			r.recordError(fmt.Sprintf("%s: %v", category, err))
			slog.Error("Category refresh failed", "category", category, "error", err)
			continue
		}
		if err := r.cache.UpdateCategory(category, articles); err != nil {
			r.recordError(fmt.Sprintf("%s: %v", category, err))
			slog.Error("Failed to cache refreshed category", "category", category, "error", err)
			continue
		}
		slog.Info("Category refreshed", "category", category, "articles", len(articles))
	}

	elapsed := time.Since(start)
	r.cache.SetRefreshDuration(elapsed)
	if err := r.cache.Save(syncRemote); err != nil {
		r.recordError(err.Error())
	}

	r.setProgress(100, "done")
	slog.Info("Background refresh finished", "duration", elapsed.Round(10*time.Millisecond))
}

// Status returns the current refresh state.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := Status{
		Running:     r.running.Load(),
		Progress:    r.progress,
		CurrentTask: r.currentTask,
		LastError:   r.lastError,
	}
	if !r.startedAt.IsZero() {
		started := r.startedAt
		st.StartedAt = &started
	}
	return st
}

func (r *Runner) setProgress(progress int, task string) {
	r.mu.Lock()
	r.progress = progress
	r.currentTask = task
	r.mu.Unlock()
}

func (r *Runner) recordError(msg string) {
	r.mu.Lock()
	r.lastError = msg
	r.mu.Unlock()
}
