package cronjob

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/growthlab-hq/growth-backend/internal/quadrant/service"
)

// SubjectLister names the subjects worth warming.
type SubjectLister interface {
	ListRecentSubjects(ctx context.Context, since time.Time, limit int) ([]string, error)
}

type Scheduler struct {
	fusion   *service.Fusion
	subjects SubjectLister
	log      *zap.SugaredLogger
}

func NewScheduler(fusion *service.Fusion, subjects SubjectLister, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		fusion:   fusion,
		subjects: subjects,
		log:      log,
	}
}

// Start schedules the nightly placement cache warm for subjects active in
// the last week.
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	// (12:00 AM)
	_, err := c.AddFunc("0 0 0 * * *", func() {
		s.warm()
	})
	if err != nil {
		s.log.Errorw("failed to create cron job", "error", err)
		return
	}

	s.log.Infow("cron scheduler started (warming placements nightly at 12:00AM)")
	c.Start()
}

func (s *Scheduler) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	subjects, err := s.subjects.ListRecentSubjects(ctx, time.Now().AddDate(0, 0, -7), 1000)
	if err != nil {
		s.log.Errorw("nightly warm: list subjects failed", "error", err)
		return
	}

	s.fusion.WarmCache(ctx, subjects)
}
