package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"raally_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, email, COALESCE(first_name, ''), COALESCE(last_name, ''),
	COALESCE(password_hash, ''), email_verified, created_at, updated_at`

// Repository implements AuthRepository with PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new auth repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateUser inserts a new account. Emails are stored lowercased so the
// case-insensitive lookup stays an index hit.
func (r *Repository) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, first_name, last_name, password_hash, email_verified)
		VALUES (lower($1), NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), $5)
		RETURNING `+userColumns+`
	`, strings.TrimSpace(params.Email), params.FirstName, params.LastName, params.PasswordHash, params.EmailVerified).
		Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetUserByEmail finds an account by email, case-insensitively.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = lower($1)
	`, strings.TrimSpace(email)).
		Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound("user not found")
		}
		return User{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetUserByID loads an account by id.
func (r *Repository) GetUserByID(ctx context.Context, userID uuid.UUID) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, userID).
		Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound("user not found")
		}
		return User{}, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetUserByProvider resolves an account through a stored social identity link.
func (r *Repository) GetUserByProvider(ctx context.Context, provider, subjectID string) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `
		SELECT u.id, u.email, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''),
			COALESCE(u.password_hash, ''), u.email_verified, u.created_at, u.updated_at
		FROM users u
		JOIN user_identities ui ON ui.user_id = u.id
		WHERE ui.provider = $1 AND ui.subject_id = $2
	`, provider, subjectID).
		Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound("identity link not found")
		}
		return User{}, fmt.Errorf("get user by provider: %w", err)
	}
	return u, nil
}

// LinkProvider records a (provider, subject) identity link for the account.
// Re-linking the same pair is a no-op.
func (r *Repository) LinkProvider(ctx context.Context, userID uuid.UUID, provider, subjectID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_identities (user_id, provider, subject_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (provider, subject_id) DO NOTHING
	`, userID, provider, subjectID)
	if err != nil {
		return fmt.Errorf("link provider: %w", err)
	}
	return nil
}

// DefaultMembership returns the tenant and roles of the user's oldest active
// membership. Returns apperr.NotFound when the user belongs to no tenant yet.
func (r *Repository) DefaultMembership(ctx context.Context, userID uuid.UUID) (uuid.UUID, []string, error) {
	var tenantID uuid.UUID
	var roles []string
	err := r.pool.QueryRow(ctx, `
		SELECT tenant_id, roles FROM tenant_users
		WHERE user_id = $1 AND status = 'active'
		ORDER BY created_at ASC
		LIMIT 1
	`, userID).Scan(&tenantID, &roles)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, nil, apperr.NotFound("no tenant membership")
		}
		return uuid.Nil, nil, fmt.Errorf("default membership: %w", err)
	}
	return tenantID, roles, nil
}

// AcceptInvitation activates the invited membership matching the token hash
// for the given user and returns the tenant it belongs to. Invitations
// issued before issuedAfter have expired and no longer match.
func (r *Repository) AcceptInvitation(ctx context.Context, tokenHash string, userID uuid.UUID, issuedAfter time.Time) (uuid.UUID, error) {
	var tenantID uuid.UUID
	err := r.pool.QueryRow(ctx, `
		UPDATE tenant_users
		SET status = 'active', invitation_token_hash = NULL, updated_at = now()
		WHERE invitation_token_hash = $1 AND user_id = $2 AND status = 'invited'
		  AND created_at >= $3
		RETURNING tenant_id
	`, tokenHash, userID, issuedAfter).Scan(&tenantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, apperr.NotFound("invitation not found")
		}
		return uuid.Nil, fmt.Errorf("accept invitation: %w", err)
	}
	return tenantID, nil
}

// CreateTenantWithOwner provisions a free-plan tenant and makes the user its
// sole admin member, atomically.
func (r *Repository) CreateTenantWithOwner(ctx context.Context, name string, userID uuid.UUID) (uuid.UUID, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin onboard: %w", err)
	}
	defer tx.Rollback(ctx)

	var tenantID uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO tenants (name, plan, plan_status)
		VALUES ($1, 'free', 'active')
		RETURNING id
	`, name).Scan(&tenantID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create tenant: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO tenant_users (tenant_id, user_id, roles, status)
		VALUES ($1, $2, $3, 'active')
	`, tenantID, userID, []string{"admin"})
	if err != nil {
		return uuid.Nil, fmt.Errorf("create owner membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit onboard: %w", err)
	}
	return tenantID, nil
}
