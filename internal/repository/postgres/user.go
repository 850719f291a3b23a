package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/idm-okta/internal/model"
)

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

var _ model.FallbackStore = (*UserRepository)(nil)

// UserRepository is the legacy user directory used as the fallback store.
type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

var selectUsers = fmt.Sprintf(`SELECT %s FROM legacy_users WHERE the_key_guid = $1`,
	strings.Join(columnNames(userColumns), ", "))

func (r *UserRepository) FindByTheKeyGUID(ctx context.Context, guid string, includeDeactivated bool) (*model.User, error) {
	if guid == "" {
		return nil, model.ErrNotFound
	}

	query := selectUsers
	if !includeDeactivated {
		query += ` AND NOT deactivated`
	}

	var user model.User
	err := r.db.QueryRowContext(ctx, query, guid).Scan(scanTargets(&user, userColumns)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by guid: %w", err)
	}

	return &user, nil
}

var insertUser = fmt.Sprintf(`INSERT INTO legacy_users (%s) VALUES (%s)`,
	strings.Join(columnNames(userColumns), ", "),
	placeholders(1, len(userColumns)))

func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, insertUser, values(user, userColumns)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Update writes the columns of attrs from user onto the record of original.
// Any attribute group the legacy record stores may be written, defaulting to
// model.DefaultAttrs. Groups the legacy store does not keep are ignored.
func (r *UserRepository) Update(ctx context.Context, original, user *model.User, attrs ...model.Attr) error {
	cols := columnsFor(model.NormalizeAttrs(attrs...))
	if len(cols) == 0 {
		return nil
	}

	set := make([]string, len(cols))
	for i, c := range cols {
		set[i] = fmt.Sprintf("%s = $%d", c.name, i+1)
	}
	query := fmt.Sprintf(`UPDATE legacy_users SET %s, updated_at = NOW() WHERE the_key_guid = $%d`,
		strings.Join(set, ", "), len(cols)+1)

	args := append(values(user, cols), original.TheKeyGUID)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}

	return nil
}

func placeholders(from, n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(out, ", ")
}
