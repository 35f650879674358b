// Package cleanup removes upload files the service no longer references:
// images replaced by an update and images left behind by a hero delete.
package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/superheromanager/hero-service/internal/api/metrics"
	"github.com/superheromanager/hero-service/internal/core/domain"
)

const queueBuffer = 128

// Sweeper is a channel-fed background worker. Removal is best effort: a
// failed delete is logged and dropped, never retried, and never blocks the
// request path that enqueued it.
type Sweeper struct {
	uploadDir string
	queue     chan string
	log       zerolog.Logger
}

// NewSweeper creates a Sweeper deleting files under uploadDir.
func NewSweeper(uploadDir string, log zerolog.Logger) *Sweeper {
	return &Sweeper{
		uploadDir: uploadDir,
		queue:     make(chan string, queueBuffer),
		log:       log,
	}
}

// Start launches the worker goroutine. It stops when ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

// Enqueue schedules a stored upload path (e.g. "/uploads/image-....jpg") for
// removal. Non-blocking: when the queue is full the path is dropped with a
// warning rather than stalling a request.
func (s *Sweeper) Enqueue(path string) {
	select {
	case s.queue <- path:
	default:
		s.log.Warn().Str("path", path).Msg("cleanup queue full, dropping")
	}
}

func (s *Sweeper) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-s.queue:
			if !ok {
				return
			}
			s.remove(path)
		}
	}
}

func (s *Sweeper) remove(path string) {
	if !strings.HasPrefix(path, "/uploads/") || path == domain.PlaceholderImage {
		s.log.Warn().Str("path", path).Msg("refusing to sweep non-upload path")
		return
	}

	// Base() strips any directory components, so a crafted stored path can
	// never escape the upload directory.
	file := filepath.Join(s.uploadDir, filepath.Base(path))
	if err := os.Remove(file); err != nil {
		if !os.IsNotExist(err) {
			metrics.SweeperRemovalsTotal.WithLabelValues("failed").Inc()
			s.log.Warn().Err(err).Str("file", file).Msg("failed to remove upload")
		}
		return
	}

	metrics.SweeperRemovalsTotal.WithLabelValues("removed").Inc()
	s.log.Info().Str("file", file).Msg("orphaned upload removed")
}
