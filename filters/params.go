package filters

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// SearchParams is the validated, fully defaulted listing query.
type SearchParams struct {
	Sort        SortOption `json:"sort"`
	MinPrice    float64    `json:"minPrice"`
	MaxPrice    float64    `json:"maxPrice"`
	RoomType    string     `json:"roomType"`
	Area        string     `json:"area"`
	BedsPerRoom string     `json:"bedsPerRoom"`
	Facilities  string     `json:"facilities"`
}

// DefaultSearchParams is what an empty query decodes to.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Sort:        DefaultSort,
		MinPrice:    DefaultMinPrice,
		MaxPrice:    DefaultMaxPrice,
		RoomType:    All,
		Area:        All,
		BedsPerRoom: All,
		Facilities:  "",
	}
}

// FieldErrors maps a parameter name to the reason its raw value was
// rejected. Absent parameters never appear here.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid search params: " + strings.Join(parts, ", ")
}

// Validate decodes raw into SearchParams. Every field of the result is
// within its domain; fields that were present but unusable fall back to
// their default and are reported in the returned FieldErrors.
func Validate(raw url.Values) (SearchParams, FieldErrors) {
	p := DefaultSearchParams()
	errs := FieldErrors{}

	if v, ok := lookup(raw, ParamSort, errs); ok {
		if IsSortOption(v) {
			p.Sort = SortOption(v)
		} else {
			errs[ParamSort] = fmt.Sprintf("unknown sort option %q", v)
		}
	}

	if v, ok := lookup(raw, ParamMinPrice, errs); ok {
		if price, err := parsePrice(v); err != nil {
			errs[ParamMinPrice] = err.Error()
		} else {
			p.MinPrice = price
		}
	}

	if v, ok := lookup(raw, ParamMaxPrice, errs); ok {
		if price, err := parsePrice(v); err != nil {
			errs[ParamMaxPrice] = err.Error()
		} else {
			p.MaxPrice = price
		}
	}

	if v, ok := lookup(raw, ParamRoomType, errs); ok {
		if isRoomTypeFilter(v) {
			p.RoomType = v
		} else {
			errs[ParamRoomType] = fmt.Sprintf("unknown room type %q", v)
		}
	}

	// Areas come from the data itself, so any value is accepted.
	if v, ok := lookup(raw, ParamArea, errs); ok {
		p.Area = v
	}

	if v, ok := lookup(raw, ParamBedsPerRoom, errs); ok {
		if isBedsPerRoomFilter(v) {
			p.BedsPerRoom = v
		} else {
			errs[ParamBedsPerRoom] = fmt.Sprintf("unknown beds per room %q", v)
		}
	}

	if v, ok := lookup(raw, ParamFacilities, errs); ok {
		if strings.TrimSpace(v) == "" {
			errs[ParamFacilities] = "blank facilities list"
		} else {
			p.Facilities = v
		}
	}

	return p, errs
}

// ParseSearchParams is Validate without the diagnostics.
func ParseSearchParams(raw url.Values) SearchParams {
	p, _ := Validate(raw)
	return p
}

// RedirectURLIfInvalid returns the canonical URL for raw when at least
// one parameter was present but invalid. Unknown parameters are dropped
// from that URL but do not by themselves trigger a redirect.
func RedirectURLIfInvalid(path string, raw url.Values) (string, bool) {
	p, errs := Validate(raw)
	if len(errs) == 0 {
		return "", false
	}
	return withQuery(path, p.Query()), true
}

// Query renders the non-default fields of p in canonical order.
func (p SearchParams) Query() string {
	values := FromSearchParams(p).ToQuery()
	if p.Sort != DefaultSort {
		values[ParamSort] = string(p.Sort)
	}
	return encodeCanonical(values)
}

// lookup returns the single usable value of key. Empty values count as
// absent; a repeated key is recorded as invalid.
func lookup(raw url.Values, key string, errs FieldErrors) (string, bool) {
	values, present := raw[key]
	if !present || len(values) == 0 {
		return "", false
	}
	if len(values) > 1 {
		errs[key] = "parameter given more than once"
		return "", false
	}
	if values[0] == "" {
		return "", false
	}
	return values[0], true
}

func parsePrice(v string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(price) {
		return 0, fmt.Errorf("%q is not a number", v)
	}
	if price < DefaultMinPrice || price > DefaultMaxPrice {
		return 0, fmt.Errorf("%s is outside [%s, %s]", formatPrice(price), formatPrice(DefaultMinPrice), formatPrice(DefaultMaxPrice))
	}
	return price, nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func encodeCanonical(values map[string]string) string {
	var sb strings.Builder
	for _, key := range canonicalOrder {
		v, ok := values[key]
		if !ok {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(v))
	}
	return sb.String()
}

func withQuery(path, query string) string {
	if path == "" {
		path = "/"
	}
	if query == "" {
		return path
	}
	return path + "?" + query
}
