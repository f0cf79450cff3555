package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrOrgNotFound  = errors.New("organization not found")
)

// User is a platform account. AuthUID is the identity provider's subject id;
// ID is our own record id.
type User struct {
	ID                 string     `json:"id"`
	AuthUID            string     `json:"auth_uid"`
	Email              string     `json:"email"`
	FirstName          *string    `json:"first_name,omitempty"`
	LastName           *string    `json:"last_name,omitempty"`
	OrgID              *string    `json:"org_id,omitempty"`
	OnboardingComplete bool       `json:"onboarding_complete"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`
}

// Organization groups the users of one agency. Domain is nil for personal
// workspaces created from free-email signups; those are never deduplicated.
type Organization struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Domain        *string   `json:"domain,omitempty"`
	SizeBucket    string    `json:"size_bucket"`
	RevenueBucket string    `json:"revenue_bucket"`
	IsPersonal    bool      `json:"is_personal"`
	OwnerUserID   string    `json:"owner_user_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Resolution is the outcome of resolving an intake to a user + organization
// pair.
type Resolution struct {
	UserID   string `json:"user_id"`
	OrgID    string `json:"org_id"`
	IsNewOrg bool   `json:"is_new_org"`
}
