package CronJobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Prunable is any cache the pruner can trim.
type Prunable interface {
	Prune() int
	Stats() (entries int, oldestAge time.Duration)
}

// CachePruner trims the routing and geocoding caches on a fixed schedule.
// Pruning only removes oldest entries, so it is safe to interleave with
// request traffic.
type CachePruner struct {
	cronScheduler *cron.Cron
	caches        []Prunable
	schedule      string
	jobID         cron.EntryID
}

// NewCachePruner creates a pruner over the given caches. Schedule uses cron
// syntax with seconds; empty means every minute.
func NewCachePruner(schedule string, caches ...Prunable) *CachePruner {
	if schedule == "" {
		schedule = "0 * * * * *"
	}
	return &CachePruner{
		cronScheduler: cron.New(cron.WithSeconds()),
		caches:        caches,
		schedule:      schedule,
	}
}

// Start initiates the pruning cron job
func (p *CachePruner) Start() error {
	var err error
	p.jobID, err = p.cronScheduler.AddFunc(p.schedule, p.RunManualPrune)
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	p.cronScheduler.Start()
	log.Printf("Cache pruner started with schedule %q", p.schedule)
	return nil
}

// Stop terminates the pruner
func (p *CachePruner) Stop() {
	if p.cronScheduler != nil {
		p.cronScheduler.Stop()
		log.Println("Cache pruner stopped")
	}
}

// UpdateSchedule changes the pruning schedule.
// Format: "0 * * * * *" = at second 0 of every minute
func (p *CachePruner) UpdateSchedule(schedule string) error {
	p.cronScheduler.Remove(p.jobID)

	var err error
	p.jobID, err = p.cronScheduler.AddFunc(schedule, p.RunManualPrune)
	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	p.schedule = schedule
	log.Printf("Cache pruning schedule updated to: %s\n", schedule)
	return nil
}

// RunManualPrune executes one pruning pass across all caches.
func (p *CachePruner) RunManualPrune() {
	for _, cache := range p.caches {
		if evicted := cache.Prune(); evicted > 0 {
			entries, oldestAge := cache.Stats()
			log.Printf("Pruned %d cache entries, %d remain (oldest %s)", evicted, entries, oldestAge)
		}
	}
}
