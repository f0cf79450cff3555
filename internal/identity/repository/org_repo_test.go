package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthlab-hq/growth-backend/internal/identity/domain"
)

func newMockOrgRepo(t *testing.T) (*OrgRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewOrgRepository(db), mock
}

func orgRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "domain", "size_bucket", "revenue_bucket", "is_personal",
		"owner_user_id", "created_at", "updated_at",
	})
}

func TestFindByDomain_ReturnsOldestBusinessOrg(t *testing.T) {
	repo, mock := newMockOrgRepo(t)

	now := time.Now().UTC()
	mock.ExpectQuery("ORDER BY created_at ASC").
		WithArgs("acmedigital.co").
		WillReturnRows(orgRows().AddRow(
			"org-1", "Acme Digital", "acmedigital.co", "6-10", "$100K - $500K",
			false, "user-1", now, now,
		))

	got, err := repo.FindByDomain(context.Background(), "acmedigital.co")
	require.NoError(t, err)

	assert.Equal(t, "org-1", got.ID)
	require.NotNil(t, got.Domain)
	assert.Equal(t, "acmedigital.co", *got.Domain)
	assert.False(t, got.IsPersonal)
}

func TestFindByDomain_NotFound(t *testing.T) {
	repo, mock := newMockOrgRepo(t)

	mock.ExpectQuery("FROM organizations").
		WithArgs("nobody.io").
		WillReturnRows(orgRows())

	_, err := repo.FindByDomain(context.Background(), "nobody.io")
	assert.ErrorIs(t, err, domain.ErrOrgNotFound)
}

func TestCreate_PersonalOrgHasNullDomain(t *testing.T) {
	repo, mock := newMockOrgRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO organizations")).
		WithArgs(sqlmock.AnyArg(), "Acme Digital", nil, "1", "$0 - $100K",
			true, "user-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	org := &domain.Organization{
		Name:          "Acme Digital",
		SizeBucket:    "1",
		RevenueBucket: "$0 - $100K",
		IsPersonal:    true,
		OwnerUserID:   "user-1",
	}
	err := repo.Create(context.Background(), org)
	require.NoError(t, err)

	assert.NotEmpty(t, org.ID, "Create assigns the id")
	assert.False(t, org.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByOwner(t *testing.T) {
	repo, mock := newMockOrgRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountByOwner(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
