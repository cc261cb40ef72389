package users

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-process Repo used in dev mode and tests. It enforces the
// same uniqueness as the Postgres constraints: email exactly, and usernames and
// slugs together under case folding.
type MemoryRepo struct {
	mu     sync.RWMutex
	users  map[int64]User
	nextID int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[int64]User)}
}

func (r *MemoryRepo) Create(ctx context.Context, u User) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email || existing.claimsName(u.Username) || existing.claimsName(u.Slug) {
			return User{}, ErrAlreadyExists
		}
	}
	r.nextID++
	now := time.Now().UTC()
	u.ID = r.nextID
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = u
	return u, nil
}

// Put stores u as-is, replacing any row with the same ID. Used to seed fixtures.
func (r *MemoryRepo) Put(u User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID > r.nextID {
		r.nextID = u.ID
	}
	r.users[u.ID] = u
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *MemoryRepo) FindByIdentifier(ctx context.Context, identifier string) (User, error) {
	return r.first(ctx, func(u User) bool {
		return u.Username == identifier || u.Email == identifier
	})
}

func (r *MemoryRepo) FindBySlugOrUsername(ctx context.Context, value string) (User, error) {
	return r.first(ctx, func(u User) bool {
		return (u.Slug != "" && strings.EqualFold(u.Slug, value)) || strings.EqualFold(u.Username, value)
	})
}

func (r *MemoryRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	_, err := r.first(ctx, func(u User) bool {
		return u.Username == username || u.Email == email
	})
	if err == ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *MemoryRepo) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	u.LastLogin = &at
	r.users[id] = u
	return nil
}

func (r *MemoryRepo) UpdateProfile(ctx context.Context, id int64, p Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	for otherID, other := range r.users {
		if otherID != id && other.Email == p.Email {
			return ErrAlreadyExists
		}
	}
	u.applyProfile(p)
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	return nil
}

// first returns the lowest-ID user matching pred, mirroring ORDER BY id LIMIT 1.
func (r *MemoryRepo) first(ctx context.Context, pred func(User) bool) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found User
	ok := false
	for _, u := range r.users {
		if pred(u) && (!ok || u.ID < found.ID) {
			found = u
			ok = true
		}
	}
	if !ok {
		return User{}, ErrNotFound
	}
	return found, nil
}

var _ Repo = (*MemoryRepo)(nil)
