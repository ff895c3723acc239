// Package maintenance runs periodic housekeeping against the record store:
// planner statistics refresh and optional sqlite snapshots with retention.
package maintenance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"hospital-portal/config"
	"hospital-portal/core/metrics"
	"hospital-portal/core/store"
	"hospital-portal/core/utils"

	"github.com/robfig/cron/v3"
)

const (
	snapshotPrefix = "portal-"
	snapshotSuffix = ".db"
	snapshotStamp  = "20060102T150405Z"
)

type Scheduler struct {
	cfg      config.MaintenanceConfig
	db       *sql.DB
	metrics  *metrics.Metrics
	logger   *utils.Logger
	schedule cron.Schedule
	loc      *time.Location

	mu      sync.Mutex
	cron    *cron.Cron
	cancel  context.CancelFunc
	running bool
	wg      sync.WaitGroup
	runMu   sync.Mutex
}

// NewScheduler parses cfg.Schedule when maintenance is enabled.
func NewScheduler(cfg config.MaintenanceConfig, db *sql.DB, m *metrics.Metrics, loc *time.Location, logger *utils.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	s := &Scheduler{cfg: cfg, db: db, metrics: m, logger: logger, loc: loc}
	if !cfg.Enabled {
		return s, nil
	}
	sched, err := cron.ParseStandard(strings.TrimSpace(cfg.Schedule))
	if err != nil {
		return nil, fmt.Errorf("maintenance schedule %q: %w", cfg.Schedule, err)
	}
	s.schedule = sched
	return s, nil
}

func (s *Scheduler) StartWithContext(ctx context.Context) {
	if s == nil || s.db == nil || !s.cfg.Enabled || s.schedule == nil {
		return
	}
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	c := cron.New(cron.WithLocation(s.loc))
	c.Schedule(s.schedule, cron.FuncJob(func() {
		_ = s.RunOnce(runCtx, time.Now().UTC())
	}))
	s.cron = c
	s.cancel = cancel
	s.running = true
	s.wg.Add(1)
	s.mu.Unlock()

	c.Start()
	go func() {
		defer s.wg.Done()
		<-runCtx.Done()
		<-c.Stop().Done()
	}()
	s.logger.Printf("maintenance scheduled: %s", s.cfg.Schedule)
}

func (s *Scheduler) StopWithContext(ctx context.Context) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	wasRunning := s.running
	s.mu.Unlock()
	if !wasRunning || cancel == nil {
		return nil
	}
	cancel()
	waitDone := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
		s.mu.Lock()
		s.running = false
		s.cron = nil
		s.mu.Unlock()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce performs a single maintenance pass. Overlapping calls are serialized.
func (s *Scheduler) RunOnce(ctx context.Context, now time.Time) error {
	if s == nil || s.db == nil {
		return nil
	}
	s.runMu.Lock()
	defer s.runMu.Unlock()

	start := time.Now()
	err := s.run(ctx, now.UTC())
	s.metrics.MaintenanceRun(err)
	if err != nil {
		s.logger.Errorf("maintenance failed: %v", err)
		return err
	}
	s.logger.Printf("maintenance done in %s", time.Since(start).Round(time.Millisecond))
	return nil
}

func (s *Scheduler) run(ctx context.Context, now time.Time) error {
	if err := store.Optimize(ctx, s.db); err != nil {
		return err
	}
	dir := strings.TrimSpace(s.cfg.SnapshotDir)
	if dir == "" {
		return nil
	}
	dest := filepath.Join(dir, snapshotPrefix+now.Format(snapshotStamp)+snapshotSuffix)
	if err := store.Snapshot(ctx, s.db, dest); err != nil {
		if errors.Is(err, store.ErrSnapshotUnsupported) {
			s.logger.Debugf("maintenance: %v", err)
			return nil
		}
		return err
	}
	s.logger.Printf("snapshot written to %s", dest)
	return s.prune(dir)
}

// prune keeps the newest cfg.Keep snapshots. Keep of zero disables pruning.
func (s *Scheduler) prune(dir string) error {
	if s.cfg.Keep <= 0 {
		return nil
	}
	names, err := ListSnapshots(dir)
	if err != nil {
		return err
	}
	if len(names) <= s.cfg.Keep {
		return nil
	}
	for _, name := range names[:len(names)-s.cfg.Keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("prune snapshot %s: %w", name, err)
		}
	}
	return nil
}

// ListSnapshots returns snapshot file names in dir, oldest first.
func ListSnapshots(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotSuffix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
