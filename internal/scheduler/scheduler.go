// Package scheduler runs background news refreshes on a cron schedule.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps a cron runner holding at most one job.
type Scheduler struct {
	cron    *cron.Cron
	mu      sync.Mutex
	entryID cron.EntryID
	spec    string
}

// New creates a stopped scheduler.
func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// Schedule registers task under spec, replacing any previous job. spec is a
// standard five-field cron expression or a descriptor such as "@every 30m".
func (s *Scheduler) Schedule(spec string, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
		s.entryID = 0
	}

	id, err := s.cron.AddFunc(spec, task)
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	s.entryID = id
	s.spec = spec
	log.Printf("News refresh scheduled: %s", spec)
	return nil
}

// Spec returns the active schedule, or "" when none is set.
func (s *Scheduler) Spec() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entryID == 0 {
		return ""
	}
	return s.spec
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
