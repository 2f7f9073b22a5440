// Package filters turns listing query strings into typed filter state,
// applies that state to a page of hostels and writes it back into a
// canonical URL.
package filters

import "github.com/dcode-github/hostel_listing_system/backend/models"

type SortOption string

const (
	SortNewest       SortOption = "newest"
	SortOldest       SortOption = "oldest"
	SortPriceLowHigh SortOption = "price_low_high"
	SortPriceHighLow SortOption = "price_high_low"
)

type SortChoice struct {
	Label string     `json:"label"`
	Value SortOption `json:"value"`
}

var SortChoices = []SortChoice{
	{Label: "Newest", Value: SortNewest},
	{Label: "Oldest", Value: SortOldest},
	{Label: "Price: Low to High", Value: SortPriceLowHigh},
	{Label: "Price: High to Low", Value: SortPriceHighLow},
}

// All is the "no restriction" value of the categorical filters.
const All = "all"

const (
	DefaultMinPrice float64 = 3000
	DefaultMaxPrice float64 = 20000
	DefaultSort             = SortNewest
)

// Query-string parameter names.
const (
	ParamSort        = "sort"
	ParamMinPrice    = "minPrice"
	ParamMaxPrice    = "maxPrice"
	ParamRoomType    = "roomType"
	ParamArea        = "area"
	ParamBedsPerRoom = "bedsPerRoom"
	ParamFacilities  = "facilities"
)

// canonicalOrder is the key order of every URL this package builds.
var canonicalOrder = []string{
	ParamSort,
	ParamMinPrice,
	ParamMaxPrice,
	ParamRoomType,
	ParamArea,
	ParamBedsPerRoom,
	ParamFacilities,
}

func IsSortOption(v string) bool {
	for _, c := range SortChoices {
		if string(c.Value) == v {
			return true
		}
	}
	return false
}

func isRoomTypeFilter(v string) bool {
	return v == All || models.IsRoomType(v)
}

func isBedsPerRoomFilter(v string) bool {
	return v == All || models.IsBedsPerRoom(v)
}
