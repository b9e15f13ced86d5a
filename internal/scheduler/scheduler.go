// Package scheduler runs the periodic jobs of the service.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type Job func(ctx context.Context) error

type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
}

func New(loc *time.Location) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		timeout: 5 * time.Minute,
	}
}

// Add registers job under a standard cron spec (or @every/@hourly).
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.run(name, job)
	})
	return err
}

// RunNow executes job once, synchronously, with the same logging.
func (s *Scheduler) RunNow(name string, job Job) {
	s.run(name, job)
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		log.Printf("job %s failed after %s: %v", name, time.Since(start), err)
		return
	}
	log.Printf("job %s done in %s", name, time.Since(start))
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("scheduler started")
}

// Stop waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
