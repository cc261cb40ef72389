package users

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Service is the credential store adapter: password hashing plus user lookups.
type Service struct {
	Repo   Repo
	Hasher Hasher
}

func NewService(repo Repo, hasher Hasher) *Service {
	if hasher == nil {
		hasher = NewBcryptHasher(0)
	}
	return &Service{Repo: repo, Hasher: hasher}
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	return nil
}

// Hash produces a salted one-way hash of password.
func (s *Service) Hash(password string) (string, error) {
	return s.Hasher.Hash(password)
}

// Verify reports whether password matches hash.
func (s *Service) Verify(password, hash string) bool {
	return s.Hasher.Verify(password, hash)
}

// FindByIdentifier looks a user up by username or email, exactly as stored.
func (s *Service) FindByIdentifier(ctx context.Context, identifier string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	if identifier == "" {
		return User{}, ErrNotFound
	}
	return s.Repo.FindByIdentifier(ctx, identifier)
}

// FindPublic looks a user up by slug or username, ignoring case.
func (s *Service) FindPublic(ctx context.Context, slugOrUsername string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	value := strings.TrimSpace(slugOrUsername)
	if value == "" {
		return User{}, ErrNotFound
	}
	return s.Repo.FindBySlugOrUsername(ctx, value)
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	if id <= 0 {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) Exists(ctx context.Context, username, email string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	return s.Repo.ExistsByUsernameOrEmail(ctx, username, email)
}

// Create hashes password and inserts the user with its default slug.
func (s *Service) Create(ctx context.Context, username, email, password string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	hash, err := s.Hash(password)
	if err != nil {
		return User{}, err
	}
	return s.Repo.Create(ctx, User{Username: username, Email: email, PasswordHash: hash, Slug: SlugFor(username)})
}

func (s *Service) TouchLastLogin(ctx context.Context, id int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.Repo.TouchLastLogin(ctx, id, time.Now().UTC())
}

func (s *Service) UpdateProfile(ctx context.Context, id int64, p Profile) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.Repo.UpdateProfile(ctx, id, p)
}
