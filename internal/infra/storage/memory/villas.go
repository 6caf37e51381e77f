package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"villastay/internal/domain/villa"
)

type VillaRepository struct {
	mu    sync.RWMutex
	items map[villa.ID]*villa.Villa
}

func NewVillaRepository() *VillaRepository {
	return &VillaRepository{items: make(map[villa.ID]*villa.Villa)}
}

func (r *VillaRepository) All(ctx context.Context) ([]*villa.Villa, error) {
	return r.filter(func(*villa.Villa) bool { return true }, 0), nil
}

func (r *VillaRepository) ByID(ctx context.Context, id villa.ID) (*villa.Villa, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, villa.ErrNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *VillaRepository) Featured(ctx context.Context, limit int) ([]*villa.Villa, error) {
	return r.filter(func(v *villa.Villa) bool { return v.IsFeatured }, limit), nil
}

func (r *VillaRepository) Trending(ctx context.Context, limit int) ([]*villa.Villa, error) {
	return r.filter(func(v *villa.Villa) bool { return v.IsTrending }, limit), nil
}

func (r *VillaRepository) Find(ctx context.Context, params villa.FindParams) ([]*villa.Villa, error) {
	return r.filter(func(v *villa.Villa) bool {
		if params.Location != "" && v.Location != params.Location {
			return false
		}
		if params.Bedrooms > 0 && v.Bedrooms != params.Bedrooms {
			return false
		}
		return true
	}, 0), nil
}

func (r *VillaRepository) Insert(ctx context.Context, v *villa.Villa) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.ID == "" {
		v.ID = villa.ID(uuid.NewString())
	}
	clone := *v
	r.items[v.ID] = &clone
	return nil
}

func (r *VillaRepository) Update(ctx context.Context, v *villa.Villa) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[v.ID]; !ok {
		return villa.ErrNotFound
	}
	clone := *v
	r.items[v.ID] = &clone
	return nil
}

func (r *VillaRepository) Delete(ctx context.Context, id villa.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return villa.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *VillaRepository) filter(keep func(*villa.Villa) bool, limit int) []*villa.Villa {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*villa.Villa
	for _, v := range r.items {
		if keep(v) {
			clone := *v
			out = append(out, &clone)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}
