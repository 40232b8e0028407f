// Package server provides application lifecycle management: running a job
// to completion under signal handling and releasing resources afterwards.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Job is a unit of work that runs until it finishes or ctx is cancelled.
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc adapts a function into the Job interface.
type JobFunc func(ctx context.Context) error

// Run calls f.
func (f JobFunc) Run(ctx context.Context) error { return f(ctx) }

// Lifecycle runs jobs and closes the resources they depend on. Resources
// are closed in reverse order of registration once every job has returned.
type Lifecycle struct {
	logger  *zap.Logger
	mu      sync.Mutex
	closers []namedCloser
	signals []os.Signal
}

type namedCloser struct {
	name  string
	close func() error
}

// NewLifecycle creates a new Lifecycle manager that cancels its jobs on
// SIGINT or SIGTERM.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		logger:  logger,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
}

// AddCloser registers a resource to release on shutdown.
//
// Precondition: name must be non-empty; fn must be non-nil.
func (l *Lifecycle) AddCloser(name string, fn func() error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closers = append(l.closers, namedCloser{name: name, close: fn})
}

// AddCloserFunc registers a resource whose close cannot fail.
func (l *Lifecycle) AddCloserFunc(name string, fn func()) {
	l.AddCloser(name, func() error { fn(); return nil })
}

// Run executes jobs concurrently and waits for all of them. A signal or a
// cancelled ctx cancels the context the jobs see; a failing job cancels the
// others.
//
// Postcondition: every registered resource is closed when Run returns. The
// returned error joins job and close failures.
func (l *Lifecycle) Run(ctx context.Context, jobs map[string]Job) error {
	start := time.Now()

	ctx, stop := signal.NotifyContext(ctx, l.signals...)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for name, job := range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.logger.Info("starting job", zap.String("job", name))
			jobStart := time.Now()
			if err := job.Run(ctx); err != nil {
				l.logger.Error("job failed",
					zap.String("job", name),
					zap.Error(err),
					zap.Duration("elapsed", time.Since(jobStart)),
				)
				mu.Lock()
				errs = append(errs, fmt.Errorf("job %s: %w", name, err))
				mu.Unlock()
				cancel()
				return
			}
			l.logger.Info("job finished",
				zap.String("job", name),
				zap.Duration("elapsed", time.Since(jobStart)),
			)
		}()
	}
	wg.Wait()

	if ctx.Err() != nil && len(errs) == 0 {
		l.logger.Info("interrupted, shutting down")
	}
	errs = append(errs, l.shutdown()...)

	l.logger.Info("shutdown complete",
		zap.Duration("total_elapsed", time.Since(start)),
	)
	return errors.Join(errs...)
}

func (l *Lifecycle) shutdown() []error {
	l.mu.Lock()
	closers := l.closers
	l.closers = nil
	l.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		nc := closers[i]
		if err := nc.close(); err != nil {
			l.logger.Warn("closing resource",
				zap.String("resource", nc.name),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("closing %s: %w", nc.name, err))
			continue
		}
		l.logger.Debug("resource closed", zap.String("resource", nc.name))
	}
	return errs
}
