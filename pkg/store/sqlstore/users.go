package sqlstore

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/jordanlanch/leaddesk/pkg/domain"
)

const usersTable = "users"

var userColumns = []string{"id", "email", "password_hash", "first_name", "last_name", "role", "created_at"}

func scanUser(rows *entsql.Rows) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &role, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.Role = domain.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func (s *Store) queryUsers(ctx context.Context, p *entsql.Predicate) ([]*domain.User, error) {
	b := s.builder()
	sel := b.Select(userColumns...).From(b.Table(usersTable))
	if p != nil {
		sel.Where(p)
	}
	sel.OrderBy(entsql.Asc("created_at"), entsql.Asc("id"))

	users := []*domain.User{}
	err := scanAll(ctx, s.drv, sel, func(rows *entsql.Rows) error {
		u, err := scanUser(rows)
		if err != nil {
			return err
		}
		users = append(users, u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	return users, nil
}

func (s *Store) getUser(ctx context.Context, p *entsql.Predicate) (*domain.User, error) {
	users, err := s.queryUsers(ctx, p)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.NewNotFoundError("User")
	}
	return users[0], nil
}

// CreateUser inserts a user.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	insert := s.builder().Insert(usersTable).
		Columns(userColumns...).
		Values(u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, string(u.Role), u.CreatedAt)
	if _, err := exec(ctx, s.drv, insert); err != nil {
		return writeError(err, usersTable, "email")
	}
	return nil
}

// GetUser loads a user by id.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getUser(ctx, entsql.EQ("id", id))
}

// GetUserByEmail loads a user by email address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUser(ctx, entsql.EQ("email", email))
}

// GetUsersByIDs loads the users with the given ids. Unknown ids are skipped.
func (s *Store) GetUsersByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	seen := make(map[string]struct{}, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		args = append(args, id)
	}

	users := []*domain.User{}
	for start := 0; start < len(args); start += insertBatchSize {
		end := min(start+insertBatchSize, len(args))
		batch, err := s.queryUsers(ctx, entsql.In("id", args[start:end]...))
		if err != nil {
			return nil, err
		}
		users = append(users, batch...)
	}
	return users, nil
}

// ListUsers lists users with the given role, or every user when role is empty.
func (s *Store) ListUsers(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	var p *entsql.Predicate
	if role != "" {
		p = entsql.EQ("role", string(role))
	}
	return s.queryUsers(ctx, p)
}

// UpdateUser stores the user's profile, role and password hash.
func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	upd := s.builder().Update(usersTable).
		Set("email", u.Email).
		Set("password_hash", u.PasswordHash).
		Set("first_name", u.FirstName).
		Set("last_name", u.LastName).
		Set("role", string(u.Role)).
		Where(entsql.EQ("id", u.ID))

	n, err := exec(ctx, s.drv, upd)
	if err != nil {
		return writeError(err, usersTable, "email")
	}
	if n == 0 {
		return domain.NewNotFoundError("User")
	}
	return nil
}

// DeleteUser removes a user.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	n, err := exec(ctx, s.drv, s.builder().Delete(usersTable).Where(entsql.EQ("id", id)))
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if n == 0 {
		return domain.NewNotFoundError("User")
	}
	return nil
}
