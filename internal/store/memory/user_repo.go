package memory

import (
	"context"

	"mockchat/internal/domain"
)

type UserRepo struct {
	db *DB
}

func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

var _ domain.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if u.ID == "" {
		u.ID = r.db.nextID()
	}
	if u.LastSeen.IsZero() {
		u.LastSeen = r.db.now()
	}
	r.db.users[u.ID] = cloneUser(u)
	r.db.userIDs = append(r.db.userIDs, u.ID)
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepo) List(ctx context.Context) ([]*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.db.userIDs))
	for _, id := range r.db.userIDs {
		users = append(users, cloneUser(r.db.users[id]))
	}
	return users, nil
}
