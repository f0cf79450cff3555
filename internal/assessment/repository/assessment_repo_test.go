package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthlab-hq/growth-backend/internal/assessment/domain"
)

func newMockRepo(t *testing.T) (*AssessmentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAssessmentRepository(db), mock
}

func TestCreate_InsertsPendingWithIntake(t *testing.T) {
	repo, mock := newMockRepo(t)

	orgID := "org-1"
	a := &domain.Assessment{
		UserID: "uid-1",
		OrgID:  &orgID,
		Type:   domain.AssessmentType,
		Intake: domain.Intake{CompanyName: "Acme", Email: "a@b.co", Website: "https://b.co"},
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO assessments")).
		WithArgs(sqlmock.AnyArg(), "uid-1", "org-1", domain.AssessmentType, sqlmock.AnyArg(), "pending", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), a)
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID, "Create assigns the id")
	assert.Equal(t, domain.StatusPending, a.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_ForwardOnlyGuardInQuery(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("ARRAY_POSITION").
		WithArgs("a-1", "scoring").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "a-1", domain.StatusScoring)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NoRowIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE assessments").
		WithArgs("missing", "scoring").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", domain.StatusScoring)
	assert.ErrorIs(t, err, domain.ErrAssessmentNotFound)
}

func TestComplete_SingleStatementWritesScoresAndStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	scores := &domain.ScoreSet{
		Zones:   map[string]float64{"acquisition": 60},
		Overall: 68,
	}
	completedAt := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("SET status = $2, scores = $3, overall_score = $4, completed_at = $5")).
		WithArgs("a-1", "completed", sqlmock.AnyArg(), 68.0, completedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Complete(context.Background(), "a-1", scores, completedAt)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_DecodesPayloads(t *testing.T) {
	repo, mock := newMockRepo(t)

	createdAt := time.Now().UTC().Add(-time.Hour)
	completedAt := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "org_id", "type", "intake", "enrichment", "scores",
		"overall_score", "status", "created_at", "completed_at",
	}).AddRow(
		"a-1", "uid-1", "org-1", domain.AssessmentType,
		[]byte(`{"company_name":"Acme","email":"a@b.co","website":"https://b.co"}`),
		[]byte(`{"market":{"avg_hourly_rate":150}}`),
		[]byte(`{"zones":{"acquisition":60},"overall":68}`),
		68.0, "completed", createdAt, completedAt,
	)

	mock.ExpectQuery("SELECT (.+) FROM assessments").
		WithArgs("a-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "a-1")
	require.NoError(t, err)

	assert.Equal(t, "Acme", got.Intake.CompanyName)
	require.NotNil(t, got.Enrichment)
	assert.Equal(t, 150.0, got.Enrichment.Market.AvgHourlyRate)
	require.NotNil(t, got.Scores)
	assert.Equal(t, 68.0, got.Scores.Overall)
	require.NotNil(t, got.OverallScore)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM assessments").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "org_id", "type", "intake", "enrichment", "scores",
			"overall_score", "status", "created_at", "completed_at",
		}))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrAssessmentNotFound)
}

func TestGetByID_ToleratesAbsentPayloads(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "org_id", "type", "intake", "enrichment", "scores",
		"overall_score", "status", "created_at", "completed_at",
	}).AddRow(
		"a-1", "uid-1", nil, domain.AssessmentType,
		[]byte(`{"company_name":"Acme","email":"a@b.co","website":"https://b.co"}`),
		nil, nil, nil, "pending", time.Now().UTC(), nil,
	)

	mock.ExpectQuery("SELECT (.+) FROM assessments").
		WithArgs("a-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "a-1")
	require.NoError(t, err)

	assert.Nil(t, got.OrgID)
	assert.Nil(t, got.Enrichment)
	assert.Nil(t, got.Scores)
	assert.Nil(t, got.OverallScore)
	assert.Nil(t, got.CompletedAt)
	assert.Equal(t, domain.StatusPending, got.Status)
}

func TestListByUser_NewestFirst(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "org_id", "type", "intake", "enrichment", "scores",
		"overall_score", "status", "created_at", "completed_at",
	}).AddRow(
		"a-2", "uid-1", nil, domain.AssessmentType,
		[]byte(`{"company_name":"Acme","email":"a@b.co","website":"https://b.co"}`),
		nil, nil, nil, "pending", time.Now().UTC(), nil,
	).AddRow(
		"a-1", "uid-1", nil, domain.AssessmentType,
		[]byte(`{"company_name":"Acme","email":"a@b.co","website":"https://b.co"}`),
		nil, nil, nil, "completed", time.Now().UTC().Add(-time.Hour), nil,
	)

	mock.ExpectQuery("ORDER BY created_at DESC").
		WithArgs("uid-1").
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "uid-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a-2", got[0].ID)
	assert.Equal(t, "a-1", got[1].ID)
}
