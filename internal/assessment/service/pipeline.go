package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/growthlab-hq/growth-backend/internal/assessment/domain"
	identitydomain "github.com/growthlab-hq/growth-backend/internal/identity/domain"
	identitysvc "github.com/growthlab-hq/growth-backend/internal/identity/service"
)

// IdentityResolver finds or creates the user + organization for a submission.
type IdentityResolver interface {
	Resolve(ctx context.Context, in identitysvc.ResolveInput, authUID string) (*identitydomain.Resolution, error)
}

// AssessmentStore is the persistence surface the pipeline drives.
type AssessmentStore interface {
	Create(ctx context.Context, a *domain.Assessment) error
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	AttachEnrichment(ctx context.Context, id string, enrichment *domain.EnrichmentResult) error
	Complete(ctx context.Context, id string, scores *domain.ScoreSet, completedAt time.Time) error
	GetByID(ctx context.Context, id string) (*domain.Assessment, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Assessment, error)
}

// Enricher is the external enrichment gateway. Any error degrades the stage.
type Enricher interface {
	Enrich(ctx context.Context, intake domain.Intake) (*domain.EnrichmentResult, error)
}

// Scorer is the deterministic scoring engine. An error here is a defect and
// fails the submission.
type Scorer interface {
	Score(intake domain.Intake) (map[string]float64, float64, error)
}

// Revealer derives the secondary heatmap metrics. Errors degrade the stage.
type Revealer interface {
	Compute(intake domain.Intake, enrichment *domain.EnrichmentResult) (map[string]any, error)
}

// Diagnoser generates narrative diagnoses. Errors degrade the stage.
type Diagnoser interface {
	Generate(ctx context.Context, intake domain.Intake, enrichment *domain.EnrichmentResult, scores *domain.ScoreSet) (map[string]string, error)
}

// Pipeline drives one submission from raw intake to a completed, persisted
// assessment: pending -> enriching -> scoring -> completed. Provider
// failures from the enriching stage onward degrade quality, not
// availability; only validation, scoring and persistence can fail the run.
type Pipeline struct {
	resolver       IdentityResolver
	store          AssessmentStore
	enricher       Enricher
	scorer         Scorer
	revealer       Revealer
	diagnoser      Diagnoser
	notifier       Notifier
	newsletterList string
	log            *zap.SugaredLogger
}

type PipelineDeps struct {
	Resolver       IdentityResolver
	Store          AssessmentStore
	Enricher       Enricher
	Scorer         Scorer
	Revealer       Revealer
	Diagnoser      Diagnoser
	Notifier       Notifier
	NewsletterList string
	Log            *zap.SugaredLogger
}

func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		resolver:       deps.Resolver,
		store:          deps.Store,
		enricher:       deps.Enricher,
		scorer:         deps.Scorer,
		revealer:       deps.Revealer,
		diagnoser:      deps.Diagnoser,
		notifier:       deps.Notifier,
		newsletterList: deps.NewsletterList,
		log:            deps.Log,
	}
}

// Submit runs the full pipeline for one intake. The returned assessment is
// completed with a non-nil overall score, possibly missing the
// enrichment-derived richness; the status field is the authoritative record
// of how far the run got if the process dies mid-flight.
func (p *Pipeline) Submit(ctx context.Context, intake domain.Intake, authUID string) (*domain.Assessment, error) {
	// Validation happens before any store write.
	if err := intake.Validate(); err != nil {
		return nil, err
	}

	resolution, err := p.resolver.Resolve(ctx, identitysvc.ResolveInput{
		CompanyName:    intake.CompanyName,
		Email:          intake.Email,
		Website:        intake.Website,
		FounderName:    intake.FounderName,
		TeamSize:       intake.TeamSize,
		AnnualRevenue:  intake.AnnualRevenue,
		MonthlyRevenue: intake.MonthlyRevenue,
	}, authUID)
	if err != nil {
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	// Assessments are keyed by the auth uid so the per-tool score lookups
	// all share one subject key.
	assessment := &domain.Assessment{
		UserID: authUID,
		OrgID:  &resolution.OrgID,
		Type:   domain.AssessmentType,
		Intake: intake,
		Status: domain.StatusPending,
	}

	// Durability checkpoint: from here the assessment exists in a
	// recoverable, inspectable state.
	if err := p.store.Create(ctx, assessment); err != nil {
		return nil, &domain.PersistenceError{Op: "create", Err: err}
	}

	enrichmentRes := p.runEnrichment(ctx, assessment)
	if enr, ok := enrichmentRes.Value(); ok {
		assessment.Enrichment = enr
	}

	if err := p.advance(ctx, assessment, domain.StatusScoring); err != nil {
		return nil, err
	}

	// Base scoring works from the intake snapshot alone; enrichment is not
	// required. A scoring failure is a defect and propagates.
	zones, overall, err := p.scorer.Score(intake)
	if err != nil {
		return nil, fmt.Errorf("scoring engine: %w", err)
	}

	scores := &domain.ScoreSet{
		Zones:   zones,
		Overall: overall,
	}

	if revealed := p.runRevelations(intake, assessment.Enrichment); revealed.Ok() {
		scores.Revelations, _ = revealed.Value()
	}

	if diagnosed := p.runDiagnosis(ctx, intake, assessment.Enrichment, scores); diagnosed.Ok() {
		scores.Diagnoses, _ = diagnosed.Value()
	}

	completedAt := time.Now().UTC()
	if err := p.store.Complete(ctx, assessment.ID, scores, completedAt); err != nil {
		return nil, &domain.PersistenceError{Op: "complete", Err: err}
	}

	assessment.Scores = scores
	assessment.OverallScore = &scores.Overall
	assessment.Status = domain.StatusCompleted
	assessment.CompletedAt = &completedAt

	p.notifyAsync(assessment)

	return assessment, nil
}

// GetByID retrieves a persisted assessment.
func (p *Pipeline) GetByID(ctx context.Context, id string) (*domain.Assessment, error) {
	return p.store.GetByID(ctx, id)
}

// ListByUser returns a user's assessments, newest first.
func (p *Pipeline) ListByUser(ctx context.Context, userID string) ([]domain.Assessment, error) {
	return p.store.ListByUser(ctx, userID)
}

// runEnrichment transitions to enriching and calls the gateway. Enrichment
// is a quality enhancement, not a correctness requirement: on any error the
// stage degrades, the result stays absent and the run continues.
func (p *Pipeline) runEnrichment(ctx context.Context, assessment *domain.Assessment) StageResult[*domain.EnrichmentResult] {
	if err := p.store.UpdateStatus(ctx, assessment.ID, domain.StatusEnriching); err != nil {
		p.logDegraded(&domain.StageError{Stage: "enriching", Err: err})
		return StageDegraded[*domain.EnrichmentResult]("enriching", err)
	}
	assessment.Status = domain.StatusEnriching

	if p.enricher == nil {
		return StageDegraded[*domain.EnrichmentResult]("enriching", fmt.Errorf("no enricher configured"))
	}

	result, err := p.enricher.Enrich(ctx, assessment.Intake)
	if err != nil {
		p.logDegraded(&domain.StageError{Stage: "enriching", Err: err})
		return StageDegraded[*domain.EnrichmentResult]("enriching", err)
	}

	if err := p.store.AttachEnrichment(ctx, assessment.ID, result); err != nil {
		p.logDegraded(&domain.StageError{Stage: "enriching", Err: err})
		return StageDegraded[*domain.EnrichmentResult]("enriching", err)
	}

	return StageOK(result)
}

func (p *Pipeline) runRevelations(intake domain.Intake, enrichment *domain.EnrichmentResult) StageResult[map[string]any] {
	if p.revealer == nil {
		return StageDegraded[map[string]any]("revelations", fmt.Errorf("no revelations engine configured"))
	}

	revealed, err := p.revealer.Compute(intake, enrichment)
	if err != nil {
		p.logDegraded(&domain.StageError{Stage: "revelations", Err: err})
		return StageDegraded[map[string]any]("revelations", err)
	}
	return StageOK(revealed)
}

func (p *Pipeline) runDiagnosis(ctx context.Context, intake domain.Intake, enrichment *domain.EnrichmentResult, scores *domain.ScoreSet) StageResult[map[string]string] {
	if p.diagnoser == nil {
		return StageDegraded[map[string]string]("diagnosis", fmt.Errorf("no diagnosis generator configured"))
	}

	diagnoses, err := p.diagnoser.Generate(ctx, intake, enrichment, scores)
	if err != nil {
		p.logDegraded(&domain.StageError{Stage: "diagnosis", Err: err})
		return StageDegraded[map[string]string]("diagnosis", err)
	}
	return StageOK(diagnoses)
}

// advance moves the lifecycle forward. Status writes are part of the
// durable record, so a failure here surfaces as a persistence error.
func (p *Pipeline) advance(ctx context.Context, assessment *domain.Assessment, status domain.Status) error {
	if err := p.store.UpdateStatus(ctx, assessment.ID, status); err != nil {
		return &domain.PersistenceError{Op: "status " + string(status), Err: err}
	}
	assessment.Status = status
	return nil
}

// notifyAsync fires the downstream notifications without blocking the
// request. Genuinely fire-and-forget: errors are logged, never surfaced,
// never retried.
func (p *Pipeline) notifyAsync(assessment *domain.Assessment) {
	if p.notifier == nil {
		return
	}

	email := assessment.Intake.Email
	id := assessment.ID

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := p.notifier.SubscribeNewsletter(ctx, email, p.newsletterList); err != nil {
			p.log.Warnw("newsletter subscription failed", "assessment_id", id, "error", err)
		}
		if err := p.notifier.PostAlert(ctx, fmt.Sprintf("assessment completed: %s", id)); err != nil {
			p.log.Warnw("alert post failed", "assessment_id", id, "error", err)
		}
	}()
}

func (p *Pipeline) logDegraded(stageErr *domain.StageError) {
	p.log.Warnw("pipeline stage degraded", "stage", stageErr.Stage, "error", stageErr.Err)
}
