package filters

import "strings"

// State is the filter object the listing controls work on. It is always
// fully populated.
type State struct {
	PriceRange  [2]float64 `json:"priceRange"`
	Facilities  []string   `json:"facilities"`
	RoomType    string     `json:"roomType"`
	Area        string     `json:"area"`
	BedsPerRoom string     `json:"bedsPerRoom"`
}

// DefaultState is the filter state of an unfiltered listing.
func DefaultState() State {
	return FromSearchParams(DefaultSearchParams())
}

// FromSearchParams expands validated params into a full State.
func FromSearchParams(p SearchParams) State {
	return State{
		PriceRange:  [2]float64{p.MinPrice, p.MaxPrice},
		Facilities:  splitFacilities(p.Facilities),
		RoomType:    p.RoomType,
		Area:        p.Area,
		BedsPerRoom: p.BedsPerRoom,
	}
}

// ToQuery returns only the fields that differ from their defaults, as
// query-string values.
func (s State) ToQuery() map[string]string {
	values := make(map[string]string)

	if s.PriceRange[0] != DefaultMinPrice {
		values[ParamMinPrice] = formatPrice(s.PriceRange[0])
	}
	if s.PriceRange[1] != DefaultMaxPrice {
		values[ParamMaxPrice] = formatPrice(s.PriceRange[1])
	}
	if s.RoomType != "" && s.RoomType != All {
		values[ParamRoomType] = s.RoomType
	}
	if s.Area != "" && s.Area != All {
		values[ParamArea] = s.Area
	}
	if s.BedsPerRoom != "" && s.BedsPerRoom != All {
		values[ParamBedsPerRoom] = s.BedsPerRoom
	}
	if facilities := joinFacilities(s.Facilities); facilities != "" {
		values[ParamFacilities] = facilities
	}

	return values
}

// Normalize fills zero-valued fields with their defaults. It is applied
// to states decoded from request bodies, where omitted fields arrive empty.
func (s State) Normalize() State {
	if s.PriceRange[0] == 0 {
		s.PriceRange[0] = DefaultMinPrice
	}
	if s.PriceRange[1] == 0 {
		s.PriceRange[1] = DefaultMaxPrice
	}
	if s.RoomType == "" {
		s.RoomType = All
	}
	if s.Area == "" {
		s.Area = All
	}
	if s.BedsPerRoom == "" {
		s.BedsPerRoom = All
	}
	s.Facilities = splitFacilities(joinFacilities(s.Facilities))
	return s
}

func splitFacilities(raw string) []string {
	facilities := []string{}
	for _, part := range strings.Split(raw, ",") {
		if f := strings.TrimSpace(part); f != "" {
			facilities = append(facilities, f)
		}
	}
	return facilities
}

func joinFacilities(facilities []string) string {
	kept := make([]string, 0, len(facilities))
	for _, f := range facilities {
		if f = strings.TrimSpace(f); f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, ",")
}
