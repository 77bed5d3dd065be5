package domain

import (
	"math"
	"strings"
)

// CompassSuffix names the derived column holding the compass label for a
// directional measurement, e.g. "wd" -> "wd_compass_dir".
const CompassSuffix = "_compass_dir"

// 8-point compass rose. Bucket edges are half-open on the left except the
// first; 337.5-360 wraps back to N, so bearings 0 and 360 both read N.
var (
	compassLabels = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW", "N"}
	compassEdges  = []float64{0, 22.5, 67.5, 112.5, 157.5, 202.5, 247.5, 292.5, 337.5, 360}
)

// directionalShortnames is the fixed set of measurement shortnames that
// carry a bearing in degrees. Extend this as new shortnames are added to the
// portal databases.
var directionalShortnames = map[string]struct{}{
	"wd":             {},
	"wgd":            {},
	"wind_direction": {},
}

// IsDirectional reports whether a measurement shortname holds a compass
// bearing.
func IsDirectional(shortname string) bool {
	_, ok := directionalShortnames[shortname]
	return ok
}

// IsCompassColumn reports whether a column name is a derived compass column.
func IsCompassColumn(name string) bool {
	return strings.HasSuffix(name, CompassSuffix)
}

// CompassLabel maps a bearing in degrees to its compass rose label. Bearings
// outside [0, 360] produce the caller's null marker rather than a label.
func CompassLabel(bearing int, nullMarker string) string {
	if bearing < 0 || bearing > 360 {
		return nullMarker
	}
	for i := 0; i < len(compassEdges)-1; i++ {
		if float64(bearing) >= compassEdges[i] && float64(bearing) <= compassEdges[i+1] {
			return compassLabels[i]
		}
	}
	return nullMarker
}

// NormalizeObservation derives auxiliary columns from one measurement map:
// for every directional field it adds "<field>_compass_dir" holding the
// compass label, or the null marker when the bearing cannot be resolved. The
// input map is copied, never mutated, so repeated calls over shared data are
// safe. Re-normalizing an already-normalized map is a no-op addition since
// compass columns are not themselves directional.
//
// A directional field holding anything but an integral number is a
// BearingTypeError; the program cannot safely continue for that instrument.
func NormalizeObservation(fields map[string]any, nullMarker string) (map[string]any, error) {
	normalized := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		normalized[k] = v
	}

	for name, value := range fields {
		if !IsDirectional(name) {
			continue
		}
		bearing, err := bearingDegrees(name, value)
		if err != nil {
			return nil, err
		}
		normalized[name+CompassSuffix] = CompassLabel(bearing, nullMarker)
	}

	return normalized, nil
}

// bearingDegrees coerces a decoded JSON value to an integer bearing. JSON
// numbers decode as float64; only integral values are accepted.
func bearingDegrees(field string, value any) (int, error) {
	switch v := value.(type) {
	case float64:
		if math.Trunc(v) != v {
			return 0, &BearingTypeError{Field: field, Value: value}
		}
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, &BearingTypeError{Field: field, Value: value}
	}
}
