// Package sweeper reconciles half-written cards: an image whose metadata
// sidecar never landed is invisible to readers and only wastes storage, so it
// gets deleted once it is older than the grace period.
package sweeper

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexai/greeting-cards/internal/entity"
	"github.com/alexai/greeting-cards/internal/repo"
	"github.com/alexai/greeting-cards/pkg/logger"
	"github.com/google/uuid"
)

const (
	imagePrefix = "cards/"
	imageSuffix = ".jpg"
)

type Sweeper struct {
	artifacts repo.ArtifactRepo
	logger    logger.Interface

	interval time.Duration
	grace    time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
}

func New(artifacts repo.ArtifactRepo, l logger.Interface, interval, grace time.Duration) *Sweeper {
	return &Sweeper{
		artifacts: artifacts,
		logger:    l,
		interval:  interval,
		grace:     grace,
	}
}

func (s *Sweeper) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return fmt.Errorf("Sweeper - Start - worker already started")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.Sweep(s.ctx)
			}
		}
	}()

	return nil
}

// Sweep scans the image namespace once and deletes aged orphans. The grace
// period keeps it from racing a pipeline run that has written its image but
// not yet its metadata.
func (s *Sweeper) Sweep(ctx context.Context) {
	objects, err := s.artifacts.List(ctx, imagePrefix)
	if err != nil {
		s.logger.Error(err, "Sweeper - Sweep - s.artifacts.List")

		return
	}

	cutoff := time.Now().Add(-s.grace)

	for _, obj := range objects {
		if obj.LastModified.After(cutoff) {
			continue
		}

		idStr := strings.TrimSuffix(strings.TrimPrefix(obj.Key, imagePrefix), imageSuffix)
		id, err := uuid.Parse(idStr)
		if err != nil {
			continue
		}

		ok, err := s.artifacts.Exists(ctx, entity.MetadataKey(id))
		if err != nil {
			s.logger.Error(err, "Sweeper - Sweep - s.artifacts.Exists")

			continue
		}
		if ok {
			continue
		}

		if err := s.artifacts.Delete(ctx, obj.Key); err != nil {
			s.logger.Error(err, "Sweeper - Sweep - s.artifacts.Delete")

			continue
		}

		s.logger.Info("Sweeper - Sweep - deleted orphan image key=%s", obj.Key)
	}
}

func (s *Sweeper) Shutdown(ctx context.Context) error {
	if !s.started.Load() {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})

	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return nil
	}
}
