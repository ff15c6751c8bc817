package warmup

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/inmoview/explorer-backend/internal/explorer/repository"
)

// Scheduler periodically refreshes the snapshot cache for every active
// project so public traffic mostly hits warm entries. Failures are logged
// and never fatal; the next tick retries.
type Scheduler struct {
	repo  *repository.Repo
	cache *repository.CachedSource
	cron  *cron.Cron
}

func NewScheduler(repo *repository.Repo, cache *repository.CachedSource) *Scheduler {
	return &Scheduler{repo: repo, cache: cache}
}

// Start registers the warm job under the given cron spec (with seconds
// field, e.g. "0 */5 * * * *") and starts the scheduler.
func (s *Scheduler) Start(spec string) {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(spec, func() {
		s.warmAll()
	})
	if err != nil {
		log.Printf("Failed to create warmup cron job: %v", err)
		return
	}

	log.Printf("Snapshot warmup scheduler started (spec %q)", spec)
	c.Start()
	s.cron = c
}

// Stop halts the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) warmAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slugs, err := s.repo.ActiveProjectSlugs(ctx)
	if err != nil {
		log.Printf("[warn] operation=warmup_list error=%v", err)
		return
	}

	warmed := 0
	for _, slug := range slugs {
		if err := s.cache.Warm(ctx, slug); err != nil {
			log.Printf("[warn] operation=warmup project=%s error=%v", slug, err)
			continue
		}
		warmed++
	}
	log.Printf("[info] operation=warmup warmed=%d total=%d", warmed, len(slugs))
}
