package domain

import "sort"

// DiscoverColumns collects the de-duplicated union of measurement shortnames
// across normalized observations, portal-sorted. The canonical portal order
// takes precedence over discovery order; shortnames unknown to the portal
// sort to the end, stable in the order first seen. Derived compass columns
// are excluded here and re-attached next to their parent field by
// BuildHeaders.
func DiscoverColumns(observations []map[string]any, portal PortalProfile) []string {
	var columns []string
	seen := make(map[string]struct{})

	for _, obs := range observations {
		// Map iteration order is random; sort each record's keys so the
		// first-seen order of unknown shortnames is deterministic.
		keys := make([]string, 0, len(obs))
		for k := range obs {
			if IsCompassColumn(k) {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			columns = append(columns, k)
		}
	}

	return portal.SortFields(columns)
}

// BuildHeaders derives the ordered output header list for one instrument.
// The list always begins with "time"; each selected field may be followed by
// a "test" column (when includeTest is set) and, for directional fields, its
// compass column. An empty return signals that no fields were discovered at
// all, i.e. there is no data to serialize.
//
// Requested columns must name discovered fields and must not be derived
// compass names; either violation is a ColumnError describing what the user
// can actually select.
func BuildHeaders(observations []map[string]any, requested []string, includeTest bool, portal PortalProfile) ([]string, error) {
	discovered := DiscoverColumns(observations, portal)
	if len(discovered) == 0 {
		return nil, nil
	}

	if err := validateRequested(requested, discovered, portal.Name); err != nil {
		return nil, err
	}

	selected := discovered
	if len(requested) > 0 {
		want := make(map[string]struct{}, len(requested))
		for _, col := range requested {
			want[col] = struct{}{}
		}
		selected = make([]string, 0, len(requested))
		for _, col := range discovered {
			if _, ok := want[col]; ok {
				selected = append(selected, col)
			}
		}
	}

	headers := make([]string, 0, 1+3*len(selected))
	headers = append(headers, "time")
	for _, col := range selected {
		headers = append(headers, col)
		if includeTest {
			headers = append(headers, "test")
		}
		if IsDirectional(col) {
			headers = append(headers, col+CompassSuffix)
		}
	}

	return headers, nil
}

func validateRequested(requested, discovered []string, portalName string) error {
	known := make(map[string]struct{}, len(discovered))
	for _, col := range discovered {
		known[col] = struct{}{}
	}

	for _, col := range requested {
		if IsCompassColumn(col) {
			return &ColumnError{
				Column: col,
				Reason: "compass direction columns are derived automatically; specify only shortnames found in " + portalName,
			}
		}
		if _, ok := known[col]; !ok {
			return &ColumnError{
				Column:     col,
				Reason:     "not present in data stream",
				Discovered: discovered,
			}
		}
	}
	return nil
}
