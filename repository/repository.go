package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dcode-github/hostel_listing_system/backend/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrReadOnly  = errors.New("store is read-only")
	ErrBadOption = errors.New("invalid list option")
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListOptions paginates a hostel listing and optionally narrows it on
// the server. Zero values mean "not set".
type ListOptions struct {
	Limit    int
	Page     int
	Area     string
	RoomType models.RoomType
	MinRent  float64
	MaxRent  float64
}

// Normalize applies defaults and rejects out-of-range values.
func (o ListOptions) Normalize() (ListOptions, error) {
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	if o.Page == 0 {
		o.Page = 1
	}
	if o.Limit < 1 || o.Limit > MaxLimit {
		return o, fmt.Errorf("%w: limit must be between 1 and %d", ErrBadOption, MaxLimit)
	}
	if o.Page < 1 {
		return o, fmt.Errorf("%w: page must be at least 1", ErrBadOption)
	}
	if o.RoomType != "" && !models.IsRoomType(string(o.RoomType)) {
		return o, fmt.Errorf("%w: roomType %q", ErrBadOption, o.RoomType)
	}
	return o, nil
}

func (o ListOptions) cacheParts() []string {
	return []string{
		fmt.Sprintf("limit=%d", o.Limit),
		fmt.Sprintf("page=%d", o.Page),
		"area=" + o.Area,
		"roomType=" + string(o.RoomType),
		fmt.Sprintf("minRent=%g", o.MinRent),
		fmt.Sprintf("maxRent=%g", o.MaxRent),
	}
}

type Page struct {
	Hostels     []models.Hostel `json:"hostels"`
	TotalDocs   int64           `json:"totalDocs"`
	TotalPages  int64           `json:"totalPages"`
	Page        int             `json:"page"`
	HasNextPage bool            `json:"hasNextPage"`
	HasPrevPage bool            `json:"hasPrevPage"`
}

func newPage(hostels []models.Hostel, total int64, limit, page int) Page {
	if hostels == nil {
		hostels = []models.Hostel{}
	}
	totalPages := (total + int64(limit) - 1) / int64(limit)
	return Page{
		Hostels:     hostels,
		TotalDocs:   total,
		TotalPages:  totalPages,
		Page:        page,
		HasNextPage: int64(page) < totalPages,
		HasPrevPage: page > 1,
	}
}

// HostelStore is the read/write boundary for the hostel catalog.
type HostelStore interface {
	List(ctx context.Context, opts ListOptions) (Page, error)
	ListAvailable(ctx context.Context, limit, page int) (Page, error)
	Search(ctx context.Context, query string, limit int) ([]models.Hostel, error)
	Get(ctx context.Context, id string) (models.Hostel, error)
	Create(ctx context.Context, h *models.Hostel) error
	Update(ctx context.Context, h *models.Hostel) error
	Delete(ctx context.Context, id string) error
}

type TenantStore interface {
	Create(ctx context.Context, t *models.Tenant) error
	Get(ctx context.Context, id string) (models.Tenant, error)
	ListByHostel(ctx context.Context, hostelID string) ([]models.Tenant, error)
}

type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	List(ctx context.Context, tenantID, hostelID string) ([]models.Payment, error)
}

type AdminStore interface {
	FindByUsername(ctx context.Context, username string) (models.Admin, error)
	Create(ctx context.Context, a *models.Admin) error
}

func normalizeSearch(query string, limit int) (int, error) {
	if query == "" {
		return 0, fmt.Errorf("%w: search query must not be empty", ErrBadOption)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return 0, fmt.Errorf("%w: limit must be between 1 and %d", ErrBadOption, MaxLimit)
	}
	return limit, nil
}
