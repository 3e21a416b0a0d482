// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"sync"
	"time"

	"github.com/finvault/bookkeeper/internal/domain"
)

// RepoMem is an in-memory user repository. User state shares the process
// lifecycle, same as the ledger.
type RepoMem struct {
	mu     sync.RWMutex
	users  map[string]domain.User
	emails map[string]struct{}
}

// NewRepoMem returns user RepoMem.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		users:  make(map[string]domain.User),
		emails: make(map[string]struct{}),
	}
}

// Create stores the user and then returns it.
// Username and email uniqueness are checked under one lock.
func (r *RepoMem) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[arg.Username]; ok {
		return domain.User{}, domain.ErrUsernameAlreadyExists
	}

	if _, ok := r.emails[arg.Email]; ok {
		return domain.User{}, domain.ErrEmailAlreadyExists
	}

	u := domain.User{
		Username:       arg.Username,
		HashedPassword: arg.HashedPassword,
		FullName:       arg.FullName,
		Email:          arg.Email,
		CreatedAt:      time.Now(),
	}

	r.users[u.Username] = u
	r.emails[u.Email] = struct{}{}

	return u, nil
}

// Get returns the user with the given username.
func (r *RepoMem) Get(ctx context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}

	return u, nil
}
