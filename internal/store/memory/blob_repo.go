package memory

import (
	"context"

	"mockchat/internal/domain"
)

// BlobRepo keeps uploaded attachment bytes in memory. Blobs are removed
// together with the message that owns them.
type BlobRepo struct {
	db *DB
}

func NewBlobRepo(db *DB) *BlobRepo {
	return &BlobRepo{db: db}
}

var _ domain.BlobRepository = (*BlobRepo)(nil)

func (r *BlobRepo) Put(ctx context.Context, b *domain.Blob) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if b.ID == "" {
		b.ID = r.db.nextID()
	}
	r.db.blobs[b.ID] = b
	return nil
}

func (r *BlobRepo) Get(ctx context.Context, id string) (*domain.Blob, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	b, ok := r.db.blobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}
