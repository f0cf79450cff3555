package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/growthlab-hq/growth-backend/internal/identity/domain"
	"github.com/growthlab-hq/growth-backend/internal/identity/repository"
)

// UserStore is the slice of the user repository the resolver needs.
type UserStore interface {
	GetByAuthUID(ctx context.Context, authUID string) (*domain.User, error)
	Upsert(ctx context.Context, u repository.UpsertUser) (string, error)
}

// OrgStore is the slice of the organization repository the resolver needs.
type OrgStore interface {
	FindByDomain(ctx context.Context, emailDomain string) (*domain.Organization, error)
	Create(ctx context.Context, org *domain.Organization) error
}

// ResolveInput is the intake data the resolver consumes.
type ResolveInput struct {
	CompanyName    string
	Email          string
	Website        string
	FounderName    string
	TeamSize       int
	AnnualRevenue  float64
	MonthlyRevenue float64
}

// Resolver finds or creates the user + organization pair for a submission.
type Resolver struct {
	users UserStore
	orgs  OrgStore
	cfg   Config
	log   *zap.SugaredLogger
}

func NewResolver(users UserStore, orgs OrgStore, cfg Config, log *zap.SugaredLogger) *Resolver {
	return &Resolver{
		users: users,
		orgs:  orgs,
		cfg:   cfg,
		log:   log,
	}
}

// Resolve returns the organization the submission belongs to, creating one
// when needed. Resubmission by the same user is idempotent: an existing org
// is always reused.
//
// The domain lookup-then-create is a check-then-act race: two concurrent
// first signups from the same new domain can both miss the lookup and both
// create an organization. Accepted limitation rather than a transactional
// constraint; callers should not rely on domain uniqueness under concurrent
// first contact.
func (s *Resolver) Resolve(ctx context.Context, in ResolveInput, authUID string) (*domain.Resolution, error) {
	user, err := s.users.GetByAuthUID(ctx, authUID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user != nil && user.OrgID != nil {
		uid, err := s.upsertUser(ctx, in, authUID, *user.OrgID)
		if err != nil {
			return nil, err
		}
		return &domain.Resolution{UserID: uid, OrgID: *user.OrgID, IsNewOrg: false}, nil
	}

	emailDomain := EmailDomain(in.Email)
	personal := emailDomain == "" || s.cfg.IsFreeEmailDomain(emailDomain)

	if !personal {
		if org, err := s.orgs.FindByDomain(ctx, emailDomain); err == nil {
			s.log.Infow("joining existing organization", "org_id", org.ID, "domain", emailDomain)
			uid, err := s.upsertUser(ctx, in, authUID, org.ID)
			if err != nil {
				return nil, err
			}
			return &domain.Resolution{UserID: uid, OrgID: org.ID, IsNewOrg: false}, nil
		} else if !errors.Is(err, domain.ErrOrgNotFound) {
			return nil, fmt.Errorf("lookup org: %w", err)
		}
	}

	// Make sure the owner user row exists before creating the org.
	ownerID, err := s.upsertUser(ctx, in, authUID, "")
	if err != nil {
		return nil, err
	}

	org := &domain.Organization{
		Name:          in.CompanyName,
		SizeBucket:    s.cfg.TeamSizeBucket(in.TeamSize),
		RevenueBucket: s.cfg.RevenueBucket(AnnualizedRevenue(in.AnnualRevenue, in.MonthlyRevenue)),
		IsPersonal:    personal,
		OwnerUserID:   ownerID,
	}
	if !personal {
		org.Domain = &emailDomain
	}

	if err := s.orgs.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("create org: %w", err)
	}

	if _, err := s.upsertUser(ctx, in, authUID, org.ID); err != nil {
		return nil, err
	}

	s.log.Infow("created organization",
		"org_id", org.ID,
		"personal", personal,
		"size_bucket", org.SizeBucket,
		"revenue_bucket", org.RevenueBucket,
	)

	return &domain.Resolution{UserID: ownerID, OrgID: org.ID, IsNewOrg: true}, nil
}

func (s *Resolver) upsertUser(ctx context.Context, in ResolveInput, authUID, orgID string) (string, error) {
	first, last := SplitFounderName(in.FounderName)
	id, err := s.users.Upsert(ctx, repository.UpsertUser{
		AuthUID:            authUID,
		Email:              in.Email,
		FirstName:          first,
		LastName:           last,
		OrgID:              orgID,
		OnboardingComplete: true,
	})
	if err != nil {
		return "", fmt.Errorf("upsert user: %w", err)
	}
	return id, nil
}

// EmailDomain returns the lowercased domain of an email address, or "" when
// the address has no domain part.
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(email[at+1:]))
}

// SplitFounderName splits a free-form founder name into first and last name.
// The first token becomes the first name, the remainder the last name.
func SplitFounderName(name string) (string, string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	if len(fields) == 1 {
		return fields[0], ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// AnnualizedRevenue prefers the annual figure and falls back to monthly x 12.
func AnnualizedRevenue(annual, monthly float64) float64 {
	if annual > 0 {
		return annual
	}
	return monthly * 12
}
