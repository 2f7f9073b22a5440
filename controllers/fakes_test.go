package controllers

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dcode-github/hostel_listing_system/backend/models"
	"github.com/dcode-github/hostel_listing_system/backend/repository"
	"github.com/dcode-github/hostel_listing_system/backend/viewmode"
)

// memHostelStore keeps hostels in insertion order.
type memHostelStore struct {
	hostels  []models.Hostel
	err      error
	readOnly bool
	lastOpts repository.ListOptions
}

func (s *memHostelStore) List(ctx context.Context, opts repository.ListOptions) (repository.Page, error) {
	s.lastOpts = opts
	if s.err != nil {
		return repository.Page{}, s.err
	}
	opts, err := opts.Normalize()
	if err != nil {
		return repository.Page{}, err
	}
	out := append([]models.Hostel{}, s.hostels...)
	if len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return repository.Page{Hostels: out, TotalDocs: int64(len(s.hostels)), Page: opts.Page}, nil
}

func (s *memHostelStore) ListAvailable(ctx context.Context, limit, page int) (repository.Page, error) {
	var out []models.Hostel
	for _, h := range s.hostels {
		if h.AvailableBeds > 0 {
			out = append(out, h)
		}
	}
	return repository.Page{Hostels: out, TotalDocs: int64(len(out)), Page: 1}, nil
}

func (s *memHostelStore) Search(ctx context.Context, query string, limit int) ([]models.Hostel, error) {
	if query == "" {
		return nil, repository.ErrBadOption
	}
	out := []models.Hostel{}
	for _, h := range s.hostels {
		if strings.Contains(strings.ToLower(h.Name), strings.ToLower(query)) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *memHostelStore) Get(ctx context.Context, id string) (models.Hostel, error) {
	for _, h := range s.hostels {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Hostel{}, repository.ErrNotFound
}

func (s *memHostelStore) Create(ctx context.Context, h *models.Hostel) error {
	if s.readOnly {
		return repository.ErrReadOnly
	}
	h.ID = "new-id"
	h.BeforeChange(time.Now())
	s.hostels = append(s.hostels, *h)
	return nil
}

func (s *memHostelStore) Update(ctx context.Context, h *models.Hostel) error {
	if s.readOnly {
		return repository.ErrReadOnly
	}
	for i := range s.hostels {
		if s.hostels[i].ID == h.ID {
			h.BeforeChange(time.Now())
			s.hostels[i] = *h
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memHostelStore) Delete(ctx context.Context, id string) error {
	if s.readOnly {
		return repository.ErrReadOnly
	}
	for i := range s.hostels {
		if s.hostels[i].ID == id {
			s.hostels = append(s.hostels[:i], s.hostels[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memViewStore struct {
	mu    sync.Mutex
	modes map[string]viewmode.Mode
}

func newMemViewStore() *memViewStore {
	return &memViewStore{modes: make(map[string]viewmode.Mode)}
}

func (s *memViewStore) Load(ctx context.Context, clientID string) (viewmode.Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.modes[clientID]
	if !ok {
		return "", viewmode.ErrNoPreference
	}
	return m, nil
}

func (s *memViewStore) Save(ctx context.Context, clientID string, m viewmode.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes[clientID] = m
	return nil
}

type memAdminStore struct {
	admins map[string]models.Admin
}

func (s *memAdminStore) FindByUsername(ctx context.Context, username string) (models.Admin, error) {
	a, ok := s.admins[username]
	if !ok {
		return models.Admin{}, repository.ErrNotFound
	}
	return a, nil
}

func (s *memAdminStore) Create(ctx context.Context, a *models.Admin) error {
	s.admins[a.Username] = *a
	return nil
}

type memTenantStore struct {
	tenants map[string]models.Tenant
}

func (s *memTenantStore) Create(ctx context.Context, t *models.Tenant) error {
	for _, existing := range s.tenants {
		if existing.CNIC == t.CNIC {
			return repository.ErrDuplicate
		}
	}
	t.ID = "tenant-" + t.CNIC
	t.BeforeChange(time.Now())
	s.tenants[t.ID] = *t
	return nil
}

func (s *memTenantStore) Get(ctx context.Context, id string) (models.Tenant, error) {
	t, ok := s.tenants[id]
	if !ok {
		return models.Tenant{}, repository.ErrNotFound
	}
	return t, nil
}

func (s *memTenantStore) ListByHostel(ctx context.Context, hostelID string) ([]models.Tenant, error) {
	out := []models.Tenant{}
	for _, t := range s.tenants {
		if hostelID == "" || t.HostelID == hostelID {
			out = append(out, t)
		}
	}
	return out, nil
}

type memPaymentStore struct {
	payments []models.Payment
}

func (s *memPaymentStore) Create(ctx context.Context, p *models.Payment) error {
	p.ID = "payment-1"
	p.BeforeChange(models.OpCreate, time.Now(), func(int) int { return 1 })
	s.payments = append(s.payments, *p)
	return nil
}

func (s *memPaymentStore) List(ctx context.Context, tenantID, hostelID string) ([]models.Payment, error) {
	return s.payments, nil
}
