package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/growthlab-hq/growth-backend/internal/assessment/domain"
)

type AssessmentRepository struct {
	db *sql.DB
}

func NewAssessmentRepository(db *sql.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// Create inserts a new assessment in pending state with the intake snapshot
// attached. This is the pipeline's durability checkpoint.
func (r *AssessmentRepository) Create(ctx context.Context, a *domain.Assessment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if a.Status == "" {
		a.Status = domain.StatusPending
	}

	intakeJSON, err := json.Marshal(a.Intake)
	if err != nil {
		return fmt.Errorf("marshal intake: %w", err)
	}

	const query = `
		INSERT INTO assessments (id, user_id, org_id, type, intake, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var orgID any
	if a.OrgID != nil {
		orgID = *a.OrgID
	}

	if _, err := r.db.ExecContext(ctx, query,
		a.ID, a.UserID, orgID, a.Type, intakeJSON, string(a.Status), a.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}

	return nil
}

// UpdateStatus advances the lifecycle status. The guard keeps the status from
// ever moving backwards, whatever order writes land in.
func (r *AssessmentRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	const query = `
		UPDATE assessments
		SET status = $2
		WHERE id = $1
		  AND ARRAY_POSITION(ARRAY['pending','enriching','scoring','completed'], status) <
		      ARRAY_POSITION(ARRAY['pending','enriching','scoring','completed'], $2)
	`

	res, err := r.db.ExecContext(ctx, query, id, string(status))
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrAssessmentNotFound
	}
	return nil
}

// AttachEnrichment stores the enrichment result on an in-flight assessment.
func (r *AssessmentRepository) AttachEnrichment(ctx context.Context, id string, enrichment *domain.EnrichmentResult) error {
	enrichmentJSON, err := json.Marshal(enrichment)
	if err != nil {
		return fmt.Errorf("marshal enrichment: %w", err)
	}

	const query = `UPDATE assessments SET enrichment = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, enrichmentJSON)
	if err != nil {
		return fmt.Errorf("attach enrichment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrAssessmentNotFound
	}
	return nil
}

// Complete writes the scores, overall score, completed status and timestamp
// in one statement so the completion invariant holds: overall_score and
// status=completed land together or not at all.
func (r *AssessmentRepository) Complete(ctx context.Context, id string, scores *domain.ScoreSet, completedAt time.Time) error {
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	const query = `
		UPDATE assessments
		SET status = $2, scores = $3, overall_score = $4, completed_at = $5
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		id, string(domain.StatusCompleted), scoresJSON, scores.Overall, completedAt,
	)
	if err != nil {
		return fmt.Errorf("complete assessment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrAssessmentNotFound
	}
	return nil
}

// GetByID retrieves one assessment with its JSONB payloads decoded.
func (r *AssessmentRepository) GetByID(ctx context.Context, id string) (*domain.Assessment, error) {
	const query = `
		SELECT id, user_id, org_id, type, intake, enrichment, scores,
		       overall_score, status, created_at, completed_at
		FROM assessments
		WHERE id = $1
	`

	a, err := scanAssessment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrAssessmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get assessment: %w", err)
	}
	return a, nil
}

// ListByUser returns a user's assessments, newest first.
func (r *AssessmentRepository) ListByUser(ctx context.Context, userID string) ([]domain.Assessment, error) {
	const query = `
		SELECT id, user_id, org_id, type, intake, enrichment, scores,
		       overall_score, status, created_at, completed_at
		FROM assessments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []domain.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		out = append(out, *a)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (*domain.Assessment, error) {
	var a domain.Assessment
	var orgID sql.NullString
	var intakeJSON []byte
	var enrichmentJSON, scoresJSON []byte
	var overall sql.NullFloat64
	var status string
	var completedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.UserID,
		&orgID,
		&a.Type,
		&intakeJSON,
		&enrichmentJSON,
		&scoresJSON,
		&overall,
		&status,
		&a.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Status = domain.Status(status)

	if orgID.Valid {
		a.OrgID = &orgID.String
	}
	if overall.Valid {
		a.OverallScore = &overall.Float64
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}

	if len(intakeJSON) > 0 {
		if err := json.Unmarshal(intakeJSON, &a.Intake); err != nil {
			return nil, fmt.Errorf("decode intake: %w", err)
		}
	}
	if len(enrichmentJSON) > 0 {
		var enr domain.EnrichmentResult
		if err := json.Unmarshal(enrichmentJSON, &enr); err != nil {
			return nil, fmt.Errorf("decode enrichment: %w", err)
		}
		a.Enrichment = &enr
	}
	if len(scoresJSON) > 0 {
		var scores domain.ScoreSet
		if err := json.Unmarshal(scoresJSON, &scores); err != nil {
			return nil, fmt.Errorf("decode scores: %w", err)
		}
		a.Scores = &scores
	}

	return &a, nil
}
