package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncURL(t *testing.T) {
	tests := []struct {
		name   string
		state  func() State
		sortBy SortOption
		want   string
	}{
		{"defaults give bare path", DefaultState, SortNewest, "/"},
		{"sort only", DefaultState, SortOldest, "/?sort=oldest"},
		{"empty sort treated as default", DefaultState, "", "/"},
		{"filters then sort in canonical order", func() State {
			s := DefaultState()
			s.Facilities = []string{"WiFi", "AC"}
			s.RoomType = "mixed"
			s.PriceRange = [2]float64{3500, 20000}
			return s
		}, SortPriceLowHigh, "/?sort=price_low_high&minPrice=3500&roomType=mixed&facilities=WiFi%2CAC"},
		{"area is escaped", func() State {
			s := DefaultState()
			s.Area = "Near University"
			return s
		}, SortNewest, "/?area=Near+University"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SyncURL("/", tt.state(), tt.sortBy))
		})
	}
}

func TestSyncURL_ReparsesToSameState(t *testing.T) {
	s := DefaultState()
	s.PriceRange = [2]float64{4000, 9000}
	s.Area = "Cantonment"
	s.Facilities = []string{"Generator/UPS"}

	target := SyncURL("/", s, SortPriceHighLow)
	query := target[len("/?"):]

	p, errs := Validate(mustQuery(t, query))

	assert.Empty(t, errs)
	assert.Equal(t, s, FromSearchParams(p))
	assert.Equal(t, SortPriceHighLow, p.Sort)
}

func TestSyncURL_KeepsPath(t *testing.T) {
	assert.Equal(t, "/hostels", SyncURL("/hostels", DefaultState(), SortNewest))
	assert.Equal(t, "/", SyncURL("", DefaultState(), SortNewest))
}
