package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/dcode-github/hostel_listing_system/backend/filters"
	"github.com/dcode-github/hostel_listing_system/backend/middleware"
	"github.com/dcode-github/hostel_listing_system/backend/models"
	"github.com/dcode-github/hostel_listing_system/backend/repository"
	"github.com/dcode-github/hostel_listing_system/backend/viewmode"
)

const (
	listingFailedMessage = "Failed to load hostels"
	listingFailedDetail  = "Please try again later."
)

type EmptyState struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

var (
	noHostelsState = EmptyState{Title: "No featured hostels found", Subtitle: "Please try again later."}
	noMatchState   = EmptyState{Title: "No hostels match your filters", Subtitle: "Try widening the price range or clearing some filters."}
)

type ListingResponse struct {
	Filters     filters.State        `json:"filters"`
	Sort        filters.SortOption   `json:"sort"`
	SortChoices []filters.SortChoice `json:"sortChoices"`
	ViewMode    viewmode.Mode        `json:"viewMode"`
	Areas       []string             `json:"areas"`
	Hostels     []models.Hostel      `json:"hostels"`
	Total       int                  `json:"total"`
	URL         string               `json:"url"`
	EmptyState  *EmptyState          `json:"emptyState,omitempty"`
}

// listing is the filtered, sorted view of the first page of hostels.
type listing struct {
	params  filters.SearchParams
	state   filters.State
	fetched []models.Hostel
	hostels []models.Hostel
}

func loadListing(ctx context.Context, store repository.HostelStore, pageSize int, raw url.Values) (listing, error) {
	params := filters.ParseSearchParams(raw)
	state := filters.FromSearchParams(params)

	page, err := store.List(ctx, repository.ListOptions{Limit: pageSize, Page: 1})
	if err != nil {
		return listing{}, err
	}
	return listing{
		params:  params,
		state:   state,
		fetched: page.Hostels,
		hostels: filters.FilterAndSort(page.Hostels, state, params.Sort),
	}, nil
}

// GetListing serves the homepage view. A query with invalid parameters is
// redirected to its canonical form before anything is fetched.
func GetListing(store repository.HostelStore, prefs *viewmode.Preferences, pageSize int, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if target, ok := filters.RedirectURLIfInvalid(r.URL.Path, r.URL.Query()); ok {
			logger.Debug("redirecting to canonical listing url", zap.String("from", r.URL.RequestURI()), zap.String("to", target))
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
			return
		}

		l, err := loadListing(r.Context(), store, pageSize, r.URL.Query())
		if err != nil {
			logger.Error("listing fetch failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Message: listingFailedMessage, Detail: listingFailedDetail})
			return
		}

		resp := ListingResponse{
			Filters:     l.state,
			Sort:        l.params.Sort,
			SortChoices: filters.SortChoices,
			ViewMode:    prefs.Get(r.Context(), middleware.VisitorFromContext(r.Context())),
			Areas:       filters.Areas(l.fetched),
			Hostels:     l.hostels,
			Total:       len(l.hostels),
			URL:         filters.SyncURL(r.URL.Path, l.state, l.params.Sort),
		}
		switch {
		case len(l.fetched) == 0:
			resp.EmptyState = &noHostelsState
		case len(l.hostels) == 0:
			resp.EmptyState = &noMatchState
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type syncURLRequest struct {
	Path    string             `json:"path"`
	Filters filters.State      `json:"filters"`
	Sort    filters.SortOption `json:"sort"`
}

// SyncListingURL returns the URL a client should navigate to after a
// filter or sort change.
func SyncListingURL(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req syncURLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Info("invalid sync url body", zap.Error(err))
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Sort != "" && !filters.IsSortOption(string(req.Sort)) {
			writeError(w, http.StatusBadRequest, "Invalid sort option")
			return
		}
		if req.Path == "" {
			req.Path = "/"
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"url": filters.SyncURL(req.Path, req.Filters.Normalize(), req.Sort),
		})
	}
}
