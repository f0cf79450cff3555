package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/growthlab-hq/growth-backend/internal/quadrant/domain"
)

// ScoreRepository reads each tool's most recent score material for a
// subject. Read-only: the fusion engine never mutates tool records. Every
// lookup is one atomic query so an axis never mixes two generations of the
// same tool's data.
type ScoreRepository struct {
	db *pgxpool.Pool
}

func NewScoreRepository(db *pgxpool.Pool) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// LatestAssessmentScore returns the newest completed assessment's overall
// score, already on the 0-100 scale. Nil when the subject has none.
func (r *ScoreRepository) LatestAssessmentScore(ctx context.Context, userID string) (*float64, error) {
	const q = `
		SELECT overall_score
		FROM assessments
		WHERE user_id = $1 AND status = 'completed' AND overall_score IS NOT NULL
		ORDER BY completed_at DESC
		LIMIT 1
	`

	var score float64
	err := r.db.QueryRow(ctx, q, userID).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest assessment score: %w", err)
	}
	return &score, nil
}

// LatestCallSnapshot returns the newest call analysis: 0-10 call score plus
// the optional 0-100 conversion rate. Nil when the subject has none.
func (r *ScoreRepository) LatestCallSnapshot(ctx context.Context, userID string) (*domain.CallSnapshot, error) {
	const q = `
		SELECT score, conversion_rate
		FROM call_analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var snap domain.CallSnapshot
	err := r.db.QueryRow(ctx, q, userID).Scan(&snap.Score, &snap.ConversionRate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest call snapshot: %w", err)
	}
	return &snap, nil
}

// BriefStats aggregates the subject's discovery briefs for the depth
// heuristic. Nil when the subject has none.
func (r *ScoreRepository) BriefStats(ctx context.Context, userID string) (*domain.BriefStats, error) {
	const q = `
		SELECT COUNT(*),
		       COALESCE(BOOL_OR(variant = 'deep'), FALSE),
		       COALESCE(MAX(sections_filled), 0),
		       COALESCE(MAX(total_sections), 0)
		FROM discovery_briefs
		WHERE user_id = $1
	`

	var stats domain.BriefStats
	err := r.db.QueryRow(ctx, q, userID).Scan(
		&stats.Count, &stats.HasDeep, &stats.RichestSections, &stats.TotalSections,
	)
	if err != nil {
		return nil, fmt.Errorf("brief stats: %w", err)
	}
	if stats.Count == 0 {
		return nil, nil
	}
	return &stats, nil
}

// LatestVisibilityScore returns the newest visibility analysis score on its
// native 0-5 scale. Nil when the subject has none.
func (r *ScoreRepository) LatestVisibilityScore(ctx context.Context, userID string) (*float64, error) {
	const q = `
		SELECT score
		FROM visibility_analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var score float64
	err := r.db.QueryRow(ctx, q, userID).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest visibility score: %w", err)
	}
	return &score, nil
}

// ListRecentSubjects returns users with assessment activity since the cutoff,
// used by the cache warmer.
func (r *ScoreRepository) ListRecentSubjects(ctx context.Context, since time.Time, limit int) ([]string, error) {
	const q = `
		SELECT DISTINCT user_id
		FROM assessments
		WHERE created_at >= $1
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, q, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent subjects: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		out = append(out, id)
	}

	return out, rows.Err()
}
