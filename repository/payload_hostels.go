package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/dcode-github/hostel_listing_system/backend/models"
)

// PayloadHostelStore reads hostels from the headless CMS REST API that
// owns the catalog. It cannot write.
type PayloadHostelStore struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewPayloadHostelStore(baseURL, apiKey string, logger *zap.Logger) *PayloadHostelStore {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetHeader("Authorization", "users API-Key "+apiKey)
	}
	return &PayloadHostelStore{httpClient: client, logger: logger}
}

type payloadMedia struct {
	URL string `json:"url"`
}

// payloadUpload is an upload field: a populated media document, or just
// its ID when the request depth does not reach it.
type payloadUpload struct {
	URL string
}

func (u *payloadUpload) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	var m payloadMedia
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	u.URL = m.URL
	return nil
}

// payloadID accepts numeric (SQL adapters) and string (Mongo adapter) ids.
type payloadID string

func (id *payloadID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	*id = payloadID(strings.Trim(string(data), `"`))
	return nil
}

type payloadHostel struct {
	ID          payloadID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Address     models.Address `json:"address"`
	Thumbnail   payloadUpload  `json:"thumbnail"`
	Images      []struct {
		Image payloadUpload `json:"image"`
	} `json:"images"`
	TotalRooms      int               `json:"totalRooms"`
	TotalBeds       int               `json:"totalBeds"`
	OccupiedBeds    int               `json:"occupiedBeds"`
	AvailableBeds   int               `json:"availableBeds"`
	BedsPerRoom     string            `json:"bedsPerRoom"`
	RoomType        string            `json:"roomType"`
	RentPerBed      float64           `json:"rentPerBed"`
	SecurityDeposit float64           `json:"securityDeposit"`
	Facilities      []string          `json:"facilities"`
	Tenants         []models.Occupant `json:"tenants"`
	Manager         string            `json:"manager"`
	ContactNumber   string            `json:"contactNumber"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

func (p payloadHostel) toModel() models.Hostel {
	h := models.Hostel{
		ID:              string(p.ID),
		Name:            p.Name,
		Description:     p.Description,
		Address:         p.Address,
		Thumbnail:       p.Thumbnail.URL,
		Images:          make([]string, 0, len(p.Images)),
		TotalRooms:      p.TotalRooms,
		TotalBeds:       p.TotalBeds,
		OccupiedBeds:    p.OccupiedBeds,
		AvailableBeds:   p.AvailableBeds,
		BedsPerRoom:     models.BedsPerRoom(p.BedsPerRoom),
		RoomType:        models.RoomType(p.RoomType),
		RentPerBed:      p.RentPerBed,
		SecurityDeposit: p.SecurityDeposit,
		Facilities:      make([]models.Facility, 0, len(p.Facilities)),
		Occupants:       p.Tenants,
		Manager:         p.Manager,
		ContactNumber:   p.ContactNumber,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	for _, img := range p.Images {
		h.Images = append(h.Images, img.Image.URL)
	}
	for _, f := range p.Facilities {
		h.Facilities = append(h.Facilities, models.Facility(f))
	}
	return h
}

type payloadFindResponse struct {
	Docs        []payloadHostel `json:"docs"`
	TotalDocs   int64           `json:"totalDocs"`
	TotalPages  int64           `json:"totalPages"`
	Page        int             `json:"page"`
	HasNextPage bool            `json:"hasNextPage"`
	HasPrevPage bool            `json:"hasPrevPage"`
}

func (r payloadFindResponse) toPage() Page {
	hostels := make([]models.Hostel, 0, len(r.Docs))
	for _, d := range r.Docs {
		hostels = append(hostels, d.toModel())
	}
	return Page{
		Hostels:     hostels,
		TotalDocs:   r.TotalDocs,
		TotalPages:  r.TotalPages,
		Page:        r.Page,
		HasNextPage: r.HasNextPage,
		HasPrevPage: r.HasPrevPage,
	}
}

func (s *PayloadHostelStore) find(ctx context.Context, params map[string]string) (payloadFindResponse, error) {
	var out payloadFindResponse
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&out).
		Get("/api/hostels")
	if err != nil {
		return out, fmt.Errorf("payload find hostels: %w", err)
	}
	if resp.IsError() {
		return out, fmt.Errorf("payload find hostels: unexpected status %d", resp.StatusCode())
	}
	return out, nil
}

func (s *PayloadHostelStore) List(ctx context.Context, opts ListOptions) (Page, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return Page{}, err
	}

	params := map[string]string{
		"limit": strconv.Itoa(opts.Limit),
		"page":  strconv.Itoa(opts.Page),
		"sort":  "-createdAt",
		"depth": "1",
	}
	if opts.Area != "" {
		params["where[address.area][equals]"] = opts.Area
	}
	if opts.RoomType != "" {
		params["where[roomType][equals]"] = string(opts.RoomType)
	}
	if opts.MinRent > 0 {
		params["where[rentPerBed][greater_than_equal]"] = strconv.FormatFloat(opts.MinRent, 'f', -1, 64)
	}
	if opts.MaxRent > 0 {
		params["where[rentPerBed][less_than_equal]"] = strconv.FormatFloat(opts.MaxRent, 'f', -1, 64)
	}

	out, err := s.find(ctx, params)
	if err != nil {
		return Page{}, err
	}
	s.logger.Debug("payload hostels fetched", zap.Int("docs", len(out.Docs)), zap.Int64("total", out.TotalDocs))
	return out.toPage(), nil
}

func (s *PayloadHostelStore) ListAvailable(ctx context.Context, limit, page int) (Page, error) {
	opts, err := ListOptions{Limit: limit, Page: page}.Normalize()
	if err != nil {
		return Page{}, err
	}
	out, err := s.find(ctx, map[string]string{
		"limit":                             strconv.Itoa(opts.Limit),
		"page":                              strconv.Itoa(opts.Page),
		"sort":                              "-createdAt",
		"depth":                             "1",
		"where[availableBeds][greater_than]": "0",
	})
	if err != nil {
		return Page{}, err
	}
	return out.toPage(), nil
}

func (s *PayloadHostelStore) Search(ctx context.Context, query string, limit int) ([]models.Hostel, error) {
	limit, err := normalizeSearch(query, limit)
	if err != nil {
		return nil, err
	}
	out, err := s.find(ctx, map[string]string{
		"limit":                                 strconv.Itoa(limit),
		"depth":                                 "1",
		"where[or][0][name][contains]":          query,
		"where[or][1][description][contains]":   query,
		"where[or][2][address.area][contains]": query,
	})
	if err != nil {
		return nil, err
	}
	return out.toPage().Hostels, nil
}

func (s *PayloadHostelStore) Get(ctx context.Context, id string) (models.Hostel, error) {
	var out payloadHostel
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetQueryParam("depth", "1").
		SetResult(&out).
		Get("/api/hostels/{id}")
	if err != nil {
		return models.Hostel{}, fmt.Errorf("payload get hostel %s: %w", id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return models.Hostel{}, ErrNotFound
	}
	if resp.IsError() {
		return models.Hostel{}, fmt.Errorf("payload get hostel %s: unexpected status %d", id, resp.StatusCode())
	}
	return out.toModel(), nil
}

func (s *PayloadHostelStore) Create(ctx context.Context, h *models.Hostel) error {
	return ErrReadOnly
}

func (s *PayloadHostelStore) Update(ctx context.Context, h *models.Hostel) error {
	return ErrReadOnly
}

func (s *PayloadHostelStore) Delete(ctx context.Context, id string) error {
	return ErrReadOnly
}
