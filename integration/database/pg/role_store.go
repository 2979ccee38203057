package pg

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DanKosgey/cow-connect-app-sub007/core/provider"
	"github.com/DanKosgey/cow-connect-app-sub007/core/role"
)

const (
	activeRoleViewQuery = `SELECT role FROM active_user_roles WHERE user_id = $1 LIMIT 1`
	activeRoleRawQuery  = `SELECT role FROM user_roles WHERE user_id = $1 AND active = true ORDER BY created_at DESC LIMIT 1`
	assignRoleQuery     = `INSERT INTO user_roles (user_id, role, active) VALUES ($1, $2, true)`
)

// profileTables maps roles to their profile tables. Acts as a whitelist:
// table names are never built from caller input.
var profileTables = map[string]string{
	role.RoleFarmer: "farmers",
	role.RoleStaff:  "staff",
	role.RoleAdmin:  "admins",
}

// RoleStore persists user role assignments and role-specific profiles. It
// implements provider.RoleQuerier and provider.RoleWriter over a pgx pool.
type RoleStore struct {
	pool *pgxpool.Pool
}

// NewRoleStore creates a role store backed by the given pool.
func NewRoleStore(pool *pgxpool.Pool) *RoleStore {
	return &RoleStore{pool: pool}
}

// ActiveRole returns the user's current active role. It queries the
// active_user_roles view first and falls back to the raw user_roles table
// when the view does not exist, so lookups survive schema rollouts. A user
// with no active assignment yields provider.ErrRoleNotFound.
func (s *RoleStore) ActiveRole(ctx context.Context, userID uuid.UUID) (string, error) {
	resolved, err := s.queryRole(ctx, activeRoleViewQuery, userID)
	if err != nil && IsUndefinedTableError(err) {
		resolved, err = s.queryRole(ctx, activeRoleRawQuery, userID)
	}
	if err != nil {
		if IsNotFoundError(err) {
			return "", provider.ErrRoleNotFound
		}
		return "", fmt.Errorf("query active role: %w", err)
	}
	return resolved, nil
}

// AssignRole records an active role assignment for the user. Duplicate
// assignments are treated as idempotent success.
func (s *RoleStore) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	if _, ok := profileTables[roleName]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRole, roleName)
	}

	_, err := s.exec(ctx, assignRoleQuery, userID.String(), roleName)
	if err != nil && !IsDuplicateKeyError(err) {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

// CreateProfile inserts the role-specific profile row for a new user. The
// target table comes from the role whitelist. An existing profile is not an
// error.
func (s *RoleStore) CreateProfile(ctx context.Context, userID uuid.UUID, roleName, email string) error {
	table, ok := profileTables[roleName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRole, roleName)
	}

	query := fmt.Sprintf(`INSERT INTO %s (user_id, email) VALUES ($1, $2)`, table)
	_, err := s.exec(ctx, query, userID.String(), email)
	if err != nil && !IsDuplicateKeyError(err) {
		return fmt.Errorf("create %s profile: %w", roleName, err)
	}
	return nil
}

func (s *RoleStore) queryRole(ctx context.Context, query string, userID uuid.UUID) (string, error) {
	var resolved string
	if tx, ok := TxFromContext(ctx); ok {
		err := tx.QueryRow(ctx, query, userID.String()).Scan(&resolved)
		return resolved, err
	}
	err := s.pool.QueryRow(ctx, query, userID.String()).Scan(&resolved)
	return resolved, err
}

func (s *RoleStore) exec(ctx context.Context, query string, args ...any) (int64, error) {
	if tx, ok := TxFromContext(ctx); ok {
		tag, err := tx.Exec(ctx, query, args...)
		return tag.RowsAffected(), err
	}
	tag, err := s.pool.Exec(ctx, query, args...)
	return tag.RowsAffected(), err
}

var (
	_ provider.RoleQuerier = (*RoleStore)(nil)
	_ provider.RoleWriter  = (*RoleStore)(nil)
)
