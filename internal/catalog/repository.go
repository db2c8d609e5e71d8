package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ServiceRepository defines the interface for service storage
type ServiceRepository interface {
	List(ctx context.Context) ([]*Service, error)
	GetByID(ctx context.Context, id string) (*Service, error)
	Create(ctx context.Context, req *CreateServiceRequest) (*Service, error)
	Update(ctx context.Context, id string, patch *ServicePatch) (*Service, error)
	Delete(ctx context.Context, id string) error
}

// ProfessionalRepository defines the interface for professional storage
type ProfessionalRepository interface {
	List(ctx context.Context) ([]*Professional, error)
	GetByID(ctx context.Context, id string) (*Professional, error)
	Create(ctx context.Context, req *CreateProfessionalRequest) (*Professional, error)
	Update(ctx context.Context, id string, patch *ProfessionalPatch) (*Professional, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryServiceRepository is the reference implementation of
// ServiceRepository, used in tests and when no database is configured.
// Insertion order is preserved for List.
type InMemoryServiceRepository struct {
	mu       sync.RWMutex
	order    []string
	services map[string]*Service
}

// NewInMemoryServiceRepository creates an empty in-memory repository.
func NewInMemoryServiceRepository() *InMemoryServiceRepository {
	return &InMemoryServiceRepository{services: make(map[string]*Service)}
}

// List returns all services in insertion order.
func (r *InMemoryServiceRepository) List(ctx context.Context) ([]*Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Service, 0, len(r.order))
	for _, id := range r.order {
		svc := *r.services[id]
		out = append(out, &svc)
	}
	return out, nil
}

// GetByID retrieves a service by ID
func (r *InMemoryServiceRepository) GetByID(ctx context.Context, id string) (*Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	out := *svc
	return &out, nil
}

// Create validates and stores a new service with a fresh id.
func (r *InMemoryServiceRepository) Create(ctx context.Context, req *CreateServiceRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	svc := &Service{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		DurationMin: req.DurationMin,
		ImageURL:    req.ImageURL,
		CreatedAt:   time.Now().UTC(),
	}

	r.mu.Lock()
	r.services[svc.ID] = svc
	r.order = append(r.order, svc.ID)
	r.mu.Unlock()

	out := *svc
	return &out, nil
}

// Update merges non-nil patch fields into the stored record.
func (r *InMemoryServiceRepository) Update(ctx context.Context, id string, patch *ServicePatch) (*Service, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	svc, ok := r.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	patch.apply(svc)
	out := *svc
	return &out, nil
}

// Delete removes the record. Historical appointments keep their service_id
// reference; consumers tolerate the missing join.
func (r *InMemoryServiceRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[id]; !ok {
		return ErrServiceNotFound
	}
	delete(r.services, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// InMemoryProfessionalRepository is the reference implementation of
// ProfessionalRepository.
type InMemoryProfessionalRepository struct {
	mu            sync.RWMutex
	order         []string
	professionals map[string]*Professional
}

// NewInMemoryProfessionalRepository creates an empty in-memory repository.
func NewInMemoryProfessionalRepository() *InMemoryProfessionalRepository {
	return &InMemoryProfessionalRepository{professionals: make(map[string]*Professional)}
}

// List returns all professionals in insertion order.
func (r *InMemoryProfessionalRepository) List(ctx context.Context) ([]*Professional, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Professional, 0, len(r.order))
	for _, id := range r.order {
		pro := *r.professionals[id]
		out = append(out, &pro)
	}
	return out, nil
}

// GetByID retrieves a professional by ID
func (r *InMemoryProfessionalRepository) GetByID(ctx context.Context, id string) (*Professional, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pro, ok := r.professionals[id]
	if !ok {
		return nil, ErrProfessionalNotFound
	}
	out := *pro
	return &out, nil
}

// Create validates and stores a new professional with a fresh id.
func (r *InMemoryProfessionalRepository) Create(ctx context.Context, req *CreateProfessionalRequest) (*Professional, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pro := &Professional{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Specialty: req.Specialty,
		Bio:       req.Bio,
		PhotoURL:  req.PhotoURL,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.professionals[pro.ID] = pro
	r.order = append(r.order, pro.ID)
	r.mu.Unlock()

	out := *pro
	return &out, nil
}

// Update merges non-nil patch fields into the stored record.
func (r *InMemoryProfessionalRepository) Update(ctx context.Context, id string, patch *ProfessionalPatch) (*Professional, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pro, ok := r.professionals[id]
	if !ok {
		return nil, ErrProfessionalNotFound
	}
	patch.apply(pro)
	out := *pro
	return &out, nil
}

// Delete removes the record.
func (r *InMemoryProfessionalRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.professionals[id]; !ok {
		return ErrProfessionalNotFound
	}
	delete(r.professionals, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
