package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/growthlab-hq/growth-backend/internal/identity/domain"
)

type OrgRepository struct {
	db *sql.DB
}

func NewOrgRepository(db *sql.DB) *OrgRepository {
	return &OrgRepository{db: db}
}

// FindByDomain looks up the organization owning an email domain. Personal
// workspaces carry a NULL domain and are never returned here.
func (r *OrgRepository) FindByDomain(ctx context.Context, emailDomain string) (*domain.Organization, error) {
	const query = `
		SELECT id, name, domain, size_bucket, revenue_bucket, is_personal,
		       owner_user_id, created_at, updated_at
		FROM organizations
		WHERE domain = $1 AND is_personal = FALSE
		ORDER BY created_at ASC
		LIMIT 1
	`

	org, err := r.scanOne(r.db.QueryRowContext(ctx, query, emailDomain))
	if err == sql.ErrNoRows {
		return nil, domain.ErrOrgNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find org by domain: %w", err)
	}
	return org, nil
}

// Create inserts a new organization. The domain lookup in the resolver and
// this insert are not one transaction: two first signups from the same new
// domain can race and both create an organization. Known limitation, see
// the resolver.
func (r *OrgRepository) Create(ctx context.Context, org *domain.Organization) error {
	if org.ID == "" {
		org.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	org.CreatedAt = now
	org.UpdatedAt = now

	const query = `
		INSERT INTO organizations (id, name, domain, size_bucket, revenue_bucket, is_personal, owner_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var domainVal any
	if org.Domain != nil {
		domainVal = *org.Domain
	}

	if _, err := r.db.ExecContext(ctx, query,
		org.ID, org.Name, domainVal, org.SizeBucket, org.RevenueBucket,
		org.IsPersonal, org.OwnerUserID, org.CreatedAt, org.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create org: %w", err)
	}

	return nil
}

// CountByOwner returns how many organizations a user owns.
func (r *OrgRepository) CountByOwner(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM organizations WHERE owner_user_id = $1`

	var n int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orgs: %w", err)
	}
	return n, nil
}

func (r *OrgRepository) scanOne(row *sql.Row) (*domain.Organization, error) {
	var org domain.Organization
	var orgDomain sql.NullString

	err := row.Scan(
		&org.ID,
		&org.Name,
		&orgDomain,
		&org.SizeBucket,
		&org.RevenueBucket,
		&org.IsPersonal,
		&org.OwnerUserID,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if orgDomain.Valid {
		org.Domain = &orgDomain.String
	}

	return &org, nil
}
