package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/growthlab-hq/growth-backend/internal/quadrant/domain"
	"github.com/growthlab-hq/growth-backend/internal/quadrant/normalize"
)

// ToolSource reads each tool's most recent score material for a subject.
// Each call must be one consistent snapshot read; the engine never mixes two
// reads of the same tool inside one computation.
type ToolSource interface {
	LatestAssessmentScore(ctx context.Context, userID string) (*float64, error)
	LatestCallSnapshot(ctx context.Context, userID string) (*domain.CallSnapshot, error)
	BriefStats(ctx context.Context, userID string) (*domain.BriefStats, error)
	LatestVisibilityScore(ctx context.Context, userID string) (*float64, error)
}

// PlacementCache is the optional derived-data cache in front of Compute.
type PlacementCache interface {
	Get(ctx context.Context, userID string) (*domain.Placement, error)
	Set(ctx context.Context, userID string, placement *domain.Placement) error
}

// Config is the fixed fusion weighting, injected so the blend rules are
// independently testable.
type Config struct {
	ExecutionPrimaryWeight     float64 // assessment
	ExecutionSecondaryWeight   float64 // call analysis
	PositioningPrimaryWeight   float64 // visibility analysis
	PositioningSecondaryWeight float64 // discovery briefs
	ArchetypeThreshold         float64
	BriefWeights               normalize.BriefWeights
}

func DefaultConfig() Config {
	return Config{
		ExecutionPrimaryWeight:     0.6,
		ExecutionSecondaryWeight:   0.4,
		PositioningPrimaryWeight:   0.6,
		PositioningSecondaryWeight: 0.4,
		ArchetypeThreshold:         50,
		BriefWeights:               normalize.DefaultBriefWeights(),
	}
}

// Fusion computes the execution/positioning placement from up to four
// independently-scored tools, tolerating any subset being absent.
type Fusion struct {
	source ToolSource
	cache  PlacementCache
	cfg    Config
	log    *zap.SugaredLogger
}

func NewFusion(source ToolSource, cache PlacementCache, cfg Config, log *zap.SugaredLogger) *Fusion {
	return &Fusion{
		source: source,
		cache:  cache,
		cfg:    cfg,
		log:    log,
	}
}

// Placement returns the subject's placement, served from cache when fresh.
// Cache trouble only costs the shortcut, never the answer.
func (f *Fusion) Placement(ctx context.Context, userID string) (*domain.Placement, error) {
	if f.cache != nil {
		if cached, err := f.cache.Get(ctx, userID); err != nil {
			f.log.Warnw("placement cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	placement, err := f.Compute(ctx, userID)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, userID, placement); err != nil {
			f.log.Warnw("placement cache write failed", "error", err)
		}
	}

	return placement, nil
}

// Compute reads all four tools and fuses them. The four lookups are fully
// independent, so they fan out concurrently; each is a single atomic query.
func (f *Fusion) Compute(ctx context.Context, userID string) (*domain.Placement, error) {
	var (
		assessment *float64
		call       *domain.CallSnapshot
		briefs     *domain.BriefStats
		visibility *float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		assessment, err = f.source.LatestAssessmentScore(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		call, err = f.source.LatestCallSnapshot(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		briefs, err = f.source.BriefStats(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		visibility, err = f.source.LatestVisibilityScore(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch tool scores: %w", err)
	}

	// Normalize every present source onto 0-100.
	var callScore, briefScore, visScore *float64
	if call != nil {
		v := normalize.CallScore(*call)
		callScore = &v
	}
	if briefs != nil {
		v := normalize.BriefDepth(*briefs, f.cfg.BriefWeights)
		briefScore = &v
	}
	if visibility != nil {
		v := normalize.FromFive(*visibility)
		visScore = &v
	}
	if assessment != nil {
		v := normalize.Clamp(*assessment)
		assessment = &v
	}

	execution := blend(assessment, f.cfg.ExecutionPrimaryWeight, callScore, f.cfg.ExecutionSecondaryWeight)
	positioning := blend(visScore, f.cfg.PositioningPrimaryWeight, briefScore, f.cfg.PositioningSecondaryWeight)

	placement := &domain.Placement{
		ExecutionScore:   execution,
		PositioningScore: positioning,
		Archetype:        f.classify(execution, positioning),
		Completeness: map[domain.Tool]bool{
			domain.ToolAssessment: assessment != nil,
			domain.ToolCalls:      callScore != nil,
			domain.ToolBriefs:     briefScore != nil,
			domain.ToolVisibility: visScore != nil,
		},
		TotalTools: len(domain.Tools),
	}
	for _, done := range placement.Completeness {
		if done {
			placement.CompletedCount++
		}
	}

	return placement, nil
}

// blend combines two optional 0-100 scores. With only one side present its
// weight renormalizes to 1.0 rather than penalizing the missing source; with
// neither the axis has no data.
func blend(primary *float64, primaryWeight float64, secondary *float64, secondaryWeight float64) *float64 {
	switch {
	case primary == nil && secondary == nil:
		return nil
	case secondary == nil:
		v := *primary
		return &v
	case primary == nil:
		v := *secondary
		return &v
	}

	total := primaryWeight + secondaryWeight
	v := (*primary*primaryWeight + *secondary*secondaryWeight) / total
	return &v
}

// classify needs both axes: partial data is not enough to place a subject.
func (f *Fusion) classify(execution, positioning *float64) *string {
	if execution == nil || positioning == nil {
		return nil
	}

	highExec := *execution >= f.cfg.ArchetypeThreshold
	highPos := *positioning >= f.cfg.ArchetypeThreshold

	var archetype string
	switch {
	case highExec && highPos:
		archetype = domain.ArchetypeMachine
	case highExec:
		archetype = domain.ArchetypeHiddenGem
	case highPos:
		archetype = domain.ArchetypeMegaphone
	default:
		archetype = domain.ArchetypeSleeper
	}
	return &archetype
}

// WarmCache recomputes and caches placements for recently active subjects.
// Called by the scheduler; errors are per-subject and logged.
func (f *Fusion) WarmCache(ctx context.Context, subjects []string) {
	if f.cache == nil {
		return
	}

	start := time.Now()
	var warmed int
	for _, userID := range subjects {
		placement, err := f.Compute(ctx, userID)
		if err != nil {
			f.log.Warnw("placement warm failed", "error", err)
			continue
		}
		if err := f.cache.Set(ctx, userID, placement); err != nil {
			f.log.Warnw("placement cache write failed", "error", err)
			continue
		}
		warmed++
	}

	f.log.Infow("placement cache warmed", "subjects", warmed, "took", time.Since(start))
}
