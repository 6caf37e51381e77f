package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"villastay/internal/domain/enquiry"
)

// EnquiryRepository is a map-backed implementation of the enquiry
// store, used by tests and memory-mode runs. Like the document store it
// mirrors, it answers only equality predicates and leaves ordering to
// the caller.
type EnquiryRepository struct {
	mu    sync.RWMutex
	items map[enquiry.ID]*enquiry.Enquiry

	// FailReads simulates a store outage for every finder.
	FailReads error
}

func NewEnquiryRepository() *EnquiryRepository {
	return &EnquiryRepository{items: make(map[enquiry.ID]*enquiry.Enquiry)}
}

func (r *EnquiryRepository) ByID(ctx context.Context, id enquiry.ID) (*enquiry.Enquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.FailReads != nil {
		return nil, r.FailReads
	}
	e, ok := r.items[id]
	if !ok {
		return nil, enquiry.ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *EnquiryRepository) Insert(ctx context.Context, e *enquiry.Enquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == "" {
		e.ID = enquiry.ID(uuid.NewString())
	}
	clone := *e
	r.items[e.ID] = &clone
	return nil
}

func (r *EnquiryRepository) Update(ctx context.Context, e *enquiry.Enquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[e.ID]; !ok {
		return enquiry.ErrNotFound
	}
	clone := *e
	r.items[e.ID] = &clone
	return nil
}

func (r *EnquiryRepository) ByVillaAndStatus(ctx context.Context, villaID string, status enquiry.Status) ([]*enquiry.Enquiry, error) {
	return r.filter(func(e *enquiry.Enquiry) bool {
		return e.VillaID == villaID && e.Status == status
	})
}

func (r *EnquiryRepository) ByStatus(ctx context.Context, status enquiry.Status) ([]*enquiry.Enquiry, error) {
	return r.filter(func(e *enquiry.Enquiry) bool { return e.Status == status })
}

func (r *EnquiryRepository) ByEmail(ctx context.Context, email string) ([]*enquiry.Enquiry, error) {
	return r.filter(func(e *enquiry.Enquiry) bool { return e.Email == email })
}

func (r *EnquiryRepository) ByPhone(ctx context.Context, phone string) ([]*enquiry.Enquiry, error) {
	return r.filter(func(e *enquiry.Enquiry) bool { return e.Phone == phone })
}

func (r *EnquiryRepository) All(ctx context.Context) ([]*enquiry.Enquiry, error) {
	return r.filter(func(*enquiry.Enquiry) bool { return true })
}

func (r *EnquiryRepository) filter(keep func(*enquiry.Enquiry) bool) ([]*enquiry.Enquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.FailReads != nil {
		return nil, r.FailReads
	}
	var out []*enquiry.Enquiry
	for _, e := range r.items {
		if keep(e) {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}
