package ecs

import (
	"context"
	"fmt"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler ticks the world's systems once per frame, in registration order.
// Only active, updateable, unpaused systems run.
type Scheduler struct {
	world       *World
	systemStats map[SystemId]*systemStatsInternal
	statsOrder  []SystemId
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{
		world:       world,
		systemStats: make(map[SystemId]*systemStatsInternal),
	}
}

func (s *Scheduler) World() *World {
	return s.world
}

// Register adds a system to the world and activates it.
func (s *Scheduler) Register(system System) error {
	if err := s.world.AddSystem(system); err != nil {
		return err
	}
	s.statsFor(system.Id())
	return nil
}

func (s *Scheduler) statsFor(id SystemId) *systemStatsInternal {
	stats, ok := s.systemStats[id]
	if !ok {
		stats = &systemStatsInternal{
			name:        string(id),
			minDuration: time.Duration(1<<63 - 1),
		}
		s.systemStats[id] = stats
		s.statsOrder = append(s.statsOrder, id)
	}
	return stats
}

// Once executes every schedulable system once with the given delta time.
// The first failing system aborts the frame; queued commands are flushed
// either way.
func (s *Scheduler) Once(dt float64) error {
	frame := newUpdateFrame(dt, s.world)
	s.world.beginFrame(frame)

	var runErr error
	for _, system := range s.world.Systems() {
		if !ShouldUpdate(system) {
			continue
		}

		start := time.Now()
		err := system.Update(frame)
		duration := time.Since(start)

		stats := s.statsFor(system.Id())
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}

		if err != nil {
			runErr = fmt.Errorf("update %s: %w", system.Id(), err)
			break
		}
	}

	s.world.endFrame()
	if err := frame.Commands.Flush(s.world); err != nil && runErr == nil {
		runErr = fmt.Errorf("flush commands: %w", err)
	}
	return runErr
}

// Run executes all systems repeatedly at the given interval until the context
// is cancelled or a frame fails.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if err := s.Once(dt); err != nil {
				return err
			}
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.world.systems),
		Systems:     make([]SystemStats, 0, len(s.statsOrder)),
	}

	var totalExecs int64
	for _, id := range s.statsOrder {
		internal := s.systemStats[id]
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems = append(stats.Systems, SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		})
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
