package filters

// SyncURL is the URL the listing should navigate to after a filter or
// sort change. Defaults are omitted; with nothing left the bare path is
// returned.
func SyncURL(path string, s State, sortBy SortOption) string {
	values := s.ToQuery()
	if sortBy != "" && sortBy != DefaultSort {
		values[ParamSort] = string(sortBy)
	}
	return withQuery(path, encodeCanonical(values))
}
