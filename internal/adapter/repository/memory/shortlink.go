// Package memory provides an in-process shortlink repository with the same
// semantics as the MongoDB one. Its counter starts seeded, so a fresh
// repository behaves like a bootstrapped database.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/vadimbarashkov/shortlink-service/internal/entity"
)

type record struct {
	shortlink entity.Shortlink
	active    bool
}

type ShortlinkRepository struct {
	mu      sync.RWMutex
	seq     uint64
	nextRow uint64
	records map[string]*record
	now     func() time.Time
}

func NewShortlinkRepository() *ShortlinkRepository {
	return &ShortlinkRepository{
		records: make(map[string]*record),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *ShortlinkRepository) NextID(_ context.Context) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	return r.seq, nil
}

func (r *ShortlinkRepository) Save(_ context.Context, sl *entity.Shortlink) (*entity.Shortlink, error) {
	const op = "adapter.repository.memory.ShortlinkRepository.Save"

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[sl.Key]; ok {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrKeyExists)
	}

	r.nextRow++
	now := r.now()

	rec := &record{
		shortlink: entity.Shortlink{
			ID:        fmt.Sprintf("%d", r.nextRow),
			Key:       sl.Key,
			KeyType:   sl.KeyType.OrDefault(),
			Redirects: slices.Clone(sl.Redirects),
			Visits:    sl.Visits,
			CreatedAt: now,
			UpdatedAt: now,
		},
		active: true,
	}
	r.records[sl.Key] = rec

	return copyOf(rec), nil
}

func (r *ShortlinkRepository) RetrieveByKey(_ context.Context, key string) (*entity.Shortlink, error) {
	const op = "adapter.repository.memory.ShortlinkRepository.RetrieveByKey"

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[key]
	if !ok || !rec.active {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrShortlinkNotFound)
	}

	return copyOf(rec), nil
}

func (r *ShortlinkRepository) RetrieveAndUpdateStats(_ context.Context, key string) (*entity.Shortlink, error) {
	const op = "adapter.repository.memory.ShortlinkRepository.RetrieveAndUpdateStats"

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[key]
	if !ok || !rec.active {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrShortlinkNotFound)
	}

	rec.shortlink.Visits++
	rec.shortlink.UpdatedAt = r.now()

	return copyOf(rec), nil
}

func (r *ShortlinkRepository) RetrieveAll(_ context.Context) ([]*entity.Shortlink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shortlinks := make([]*entity.Shortlink, 0, len(r.records))
	for _, rec := range r.records {
		if rec.active {
			shortlinks = append(shortlinks, copyOf(rec))
		}
	}

	return shortlinks, nil
}

func (r *ShortlinkRepository) Remove(_ context.Context, key string) error {
	const op = "adapter.repository.memory.ShortlinkRepository.Remove"

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[key]
	if !ok || !rec.active {
		return fmt.Errorf("%s: %w", op, entity.ErrShortlinkNotFound)
	}

	rec.active = false
	rec.shortlink.UpdatedAt = r.now()

	return nil
}

func copyOf(rec *record) *entity.Shortlink {
	sl := rec.shortlink
	sl.Redirects = slices.Clone(rec.shortlink.Redirects)
	return &sl
}
