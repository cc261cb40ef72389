package users

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"resume-site/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, username, email, password_hash, fullname, title, contact, address, age,
summary, skills, education, experience, linkedin, github, slug, created_at, updated_at, last_login`

type rowScanner interface {
	Scan(dest ...any) error
}

// Create inserts a new user with empty profile fields. An empty slug stores NULL.
func (r *PGRepo) Create(ctx context.Context, u User) (User, error) {
	const query = `
INSERT INTO users (username, email, password_hash, fullname, slug, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now(), now())
RETURNING id, created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query, u.Username, u.Email, u.PasswordHash, u.FullName, nullableString(u.Slug)).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return User{}, ErrAlreadyExists
		}
		return User{}, err
	}
	return u, nil
}

// GetByID loads a user by primary key.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, id))
}

// FindByIdentifier loads a user whose username or email equals identifier.
func (r *PGRepo) FindByIdentifier(ctx context.Context, identifier string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $1 ORDER BY id LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, identifier))
}

// FindBySlugOrUsername loads the first user whose slug or username matches value, ignoring case.
func (r *PGRepo) FindBySlugOrUsername(ctx context.Context, value string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users
WHERE lower(slug) = lower($1) OR lower(username) = lower($1)
ORDER BY id
LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, value))
}

// ExistsByUsernameOrEmail reports whether either value is already taken.
func (r *PGRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, username, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// TouchLastLogin stamps the last successful login time.
func (r *PGRepo) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	const query = `UPDATE users SET last_login = $1 WHERE id = $2`
	_, err := r.DB.ExecContext(ctx, query, at, id)
	return err
}

// UpdateProfile replaces every profile column of the user.
func (r *PGRepo) UpdateProfile(ctx context.Context, id int64, p Profile) error {
	const query = `
UPDATE users SET
  fullname = $1,
  contact = $2,
  email = $3,
  address = $4,
  age = $5,
  title = $6,
  summary = $7,
  skills = $8,
  education = $9,
  experience = $10,
  linkedin = $11,
  github = $12,
  updated_at = now()
WHERE id = $13`
	res, err := r.DB.ExecContext(ctx, query,
		p.FullName,
		p.Contact,
		p.Email,
		p.Address,
		nullableAge(p.Age),
		p.Title,
		p.Summary,
		p.Skills,
		p.Education,
		p.Experience,
		p.LinkedIn,
		p.GitHub,
		id,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row rowScanner) (User, error) {
	var u User
	var age sql.NullInt32
	var slug sql.NullString
	var lastLogin sql.NullTime
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.Title,
		&u.Contact,
		&u.Address,
		&age,
		&u.Summary,
		&u.Skills,
		&u.Education,
		&u.Experience,
		&u.LinkedIn,
		&u.GitHub,
		&slug,
		&u.CreatedAt,
		&u.UpdatedAt,
		&lastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if age.Valid {
		u.Age = int(age.Int32)
	}
	if slug.Valid {
		u.Slug = slug.String
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return u, nil
}

func nullableString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func nullableAge(age int) any {
	if age <= 0 {
		return nil
	}
	return age
}

var _ Repo = (*PGRepo)(nil)
