package repository

import (
	"context"
	"errors"
	"fmt"

	"raally_backend/internal/tenantuser/domain"
	"raally_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	userNotFoundMessage       = "user not found"
	membershipNotFoundMessage = "membership not found"
)

// Repo implements the Store interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tenant membership repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Store.
var _ Store = (*Repo)(nil)

// pgxTxn wraps a pgx transaction as a Txn unit of work.
type pgxTxn struct {
	tx pgx.Tx
}

func (t *pgxTxn) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit membership txn: %w", err)
	}
	return nil
}

func (t *pgxTxn) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("rollback membership txn: %w", err)
	}
	return nil
}

// Begin opens a new database transaction.
func (r *Repo) Begin(ctx context.Context) (Txn, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin membership txn: %w", err)
	}
	return &pgxTxn{tx: tx}, nil
}

// unwrap extracts the pgx transaction from a Txn handle.
func unwrap(txn Txn) (pgx.Tx, error) {
	wrapped, ok := txn.(*pgxTxn)
	if !ok {
		return nil, fmt.Errorf("unexpected txn type %T", txn)
	}
	return wrapped.tx, nil
}

// FindUserByID resolves a user record by id.
func (r *Repo) FindUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, first_name, last_name
		FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("find user by id: %w", err)
	}
	return user, nil
}

// FindUserByEmail resolves a user record by case-insensitive email.
func (r *Repo) FindUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, first_name, last_name
		FROM users WHERE lower(email) = lower($1)
	`, email).Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

// CreateUser inserts a bare user record inside the unit of work.
func (r *Repo) CreateUser(ctx context.Context, txn Txn, email string) (User, error) {
	tx, err := unwrap(txn)
	if err != nil {
		return User{}, err
	}

	var user User
	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, email_verified)
		VALUES ($1, false)
		RETURNING id, email, first_name, last_name
	`, email).Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName)
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// FindMembership loads the membership of a user within a tenant.
func (r *Repo) FindMembership(ctx context.Context, tenantID, userID uuid.UUID) (domain.Membership, error) {
	var m domain.Membership
	var roles []string
	var status string

	err := r.pool.QueryRow(ctx, `
		SELECT tenant_id, user_id, roles, status, created_at, updated_at
		FROM tenant_users
		WHERE tenant_id = $1 AND user_id = $2
	`, tenantID, userID).Scan(&m.TenantID, &m.UserID, &roles, &status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Membership{}, apperr.NotFound(membershipNotFoundMessage)
		}
		return domain.Membership{}, fmt.Errorf("find membership: %w", err)
	}

	// An empty stored array may scan as nil; the domain treats nil as absent.
	if roles == nil {
		roles = []string{}
	}
	roleSet, err := domain.NormalizeRoles(roles)
	if err != nil {
		return domain.Membership{}, fmt.Errorf("find membership: %w", err)
	}
	m.Roles = roleSet
	m.Status = domain.MembershipStatus(status)
	return m, nil
}

// UpdateMembershipRoles persists a new role set inside the unit of work.
func (r *Repo) UpdateMembershipRoles(ctx context.Context, txn Txn, tenantID, userID uuid.UUID, roles domain.RoleSet) error {
	tx, err := unwrap(txn)
	if err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `
		UPDATE tenant_users
		SET roles = $3, updated_at = now()
		WHERE tenant_id = $1 AND user_id = $2
	`, tenantID, userID, roles.Strings())
	if err != nil {
		return fmt.Errorf("update membership roles: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(membershipNotFoundMessage)
	}
	return nil
}

// DestroyMembership removes a user's membership inside the unit of work.
func (r *Repo) DestroyMembership(ctx context.Context, txn Txn, tenantID, userID uuid.UUID) error {
	tx, err := unwrap(txn)
	if err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `
		DELETE FROM tenant_users
		WHERE tenant_id = $1 AND user_id = $2
	`, tenantID, userID)
	if err != nil {
		return fmt.Errorf("destroy membership: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(membershipNotFoundMessage)
	}
	return nil
}

// CreateMembership inserts an invited membership inside the unit of work.
func (r *Repo) CreateMembership(ctx context.Context, txn Txn, membership domain.Membership, invitationTokenHash string) error {
	tx, err := unwrap(txn)
	if err != nil {
		return err
	}

	var tokenHash *string
	if invitationTokenHash != "" {
		tokenHash = &invitationTokenHash
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO tenant_users (tenant_id, user_id, roles, status, invitation_token_hash)
		VALUES ($1, $2, $3, $4, $5)
	`, membership.TenantID, membership.UserID, membership.Roles.Strings(), string(membership.Status), tokenHash)
	if err != nil {
		return fmt.Errorf("create membership: %w", err)
	}
	return nil
}

// ListMembers returns all members of a tenant joined with user records.
func (r *Repo) ListMembers(ctx context.Context, tenantID uuid.UUID) ([]Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.email, u.first_name, u.last_name, tu.roles, tu.status, tu.created_at
		FROM tenant_users tu
		JOIN users u ON u.id = tu.user_id
		WHERE tu.tenant_id = $1
		ORDER BY u.email ASC
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var member Member
		var roles []string
		var status string

		if err := rows.Scan(
			&member.User.ID, &member.User.Email, &member.User.FirstName, &member.User.LastName,
			&roles, &status, &member.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}

		if roles == nil {
			roles = []string{}
		}
		roleSet, err := domain.NormalizeRoles(roles)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		member.Roles = roleSet
		member.Status = domain.MembershipStatus(status)
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}
