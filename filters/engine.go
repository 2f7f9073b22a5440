package filters

import (
	"sort"

	"github.com/dcode-github/hostel_listing_system/backend/models"
)

// Matches reports whether h passes every filter in s. Price bounds are
// inclusive and facilities are conjunctive.
func (s State) Matches(h *models.Hostel) bool {
	if h.RentPerBed < s.PriceRange[0] || h.RentPerBed > s.PriceRange[1] {
		return false
	}
	if s.RoomType != All && string(h.RoomType) != s.RoomType {
		return false
	}
	if s.Area != All && h.Address.Area != s.Area {
		return false
	}
	if s.BedsPerRoom != All && string(h.BedsPerRoom) != s.BedsPerRoom {
		return false
	}
	for _, f := range s.Facilities {
		if !h.HasFacility(models.Facility(f)) {
			return false
		}
	}
	return true
}

// FilterAndSort returns the hostels matching s ordered by sortBy. The
// input slice is left untouched. Unknown sort options order newest
// first; equal keys are ordered by ID.
func FilterAndSort(hostels []models.Hostel, s State, sortBy SortOption) []models.Hostel {
	out := make([]models.Hostel, 0, len(hostels))
	for i := range hostels {
		if s.Matches(&hostels[i]) {
			out = append(out, hostels[i])
		}
	}

	cmp := comparator(sortBy)
	sort.SliceStable(out, func(i, j int) bool {
		if c := cmp(&out[i], &out[j]); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func comparator(sortBy SortOption) func(a, b *models.Hostel) int {
	switch sortBy {
	case SortPriceLowHigh:
		return func(a, b *models.Hostel) int { return compareFloat(a.RentPerBed, b.RentPerBed) }
	case SortPriceHighLow:
		return func(a, b *models.Hostel) int { return compareFloat(b.RentPerBed, a.RentPerBed) }
	case SortOldest:
		return func(a, b *models.Hostel) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		return func(a, b *models.Hostel) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Areas lists the distinct areas of hostels in first-seen order.
func Areas(hostels []models.Hostel) []string {
	seen := make(map[string]bool, len(hostels))
	areas := make([]string, 0, len(hostels))
	for i := range hostels {
		area := hostels[i].Address.Area
		if area == "" || seen[area] {
			continue
		}
		seen[area] = true
		areas = append(areas, area)
	}
	return areas
}
