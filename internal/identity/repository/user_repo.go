package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/growthlab-hq/growth-backend/internal/identity/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByAuthUID retrieves a user by their identity-provider subject id
func (r *UserRepository) GetByAuthUID(ctx context.Context, authUID string) (*domain.User, error) {
	const query = `
		SELECT id, auth_uid, email, first_name, last_name, org_id,
		       onboarding_complete, created_at, updated_at, last_login_at
		FROM users
		WHERE auth_uid = $1
	`

	var user domain.User
	var firstName, lastName, orgID sql.NullString
	var lastLoginAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, authUID).Scan(
		&user.ID,
		&user.AuthUID,
		&user.Email,
		&firstName,
		&lastName,
		&orgID,
		&user.OnboardingComplete,
		&user.CreatedAt,
		&user.UpdatedAt,
		&lastLoginAt,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if firstName.Valid {
		user.FirstName = &firstName.String
	}
	if lastName.Valid {
		user.LastName = &lastName.String
	}
	if orgID.Valid {
		user.OrgID = &orgID.String
	}
	if lastLoginAt.Valid {
		user.LastLoginAt = &lastLoginAt.Time
	}

	return &user, nil
}

// UpsertUser carries the fields written on every resolve. The upsert keys on
// auth_uid so re-submission never creates a second user row.
type UpsertUser struct {
	AuthUID            string
	Email              string
	FirstName          string
	LastName           string
	OrgID              string
	OnboardingComplete bool
}

// Upsert inserts or updates the user and returns the record id.
func (r *UserRepository) Upsert(ctx context.Context, u UpsertUser) (string, error) {
	if u.AuthUID == "" {
		return "", fmt.Errorf("auth_uid required")
	}

	const query = `
		INSERT INTO users (auth_uid, email, first_name, last_name, org_id, onboarding_complete, updated_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, '')::uuid, $6, NOW())
		ON CONFLICT (auth_uid) DO UPDATE
		SET
		  email = COALESCE(EXCLUDED.email, users.email),
		  first_name = COALESCE(EXCLUDED.first_name, users.first_name),
		  last_name = COALESCE(EXCLUDED.last_name, users.last_name),
		  org_id = COALESCE(EXCLUDED.org_id, users.org_id),
		  onboarding_complete = users.onboarding_complete OR EXCLUDED.onboarding_complete,
		  updated_at = NOW()
		RETURNING id::text
	`

	var id string
	if err := r.db.QueryRowContext(ctx, query,
		u.AuthUID, u.Email, u.FirstName, u.LastName, u.OrgID, u.OnboardingComplete,
	).Scan(&id); err != nil {
		return "", fmt.Errorf("upsert user: %w", err)
	}

	return id, nil
}
