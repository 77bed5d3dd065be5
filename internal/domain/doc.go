// Package domain models CHORDS environmental sensor data and the pure logic
// for normalizing and shaping it.
//
// # Data Source
//
// Observations come from CHORDS portals (Cloud-Hosted Real-time Data
// Services), each a named deployment of the telemetry service with its own
// canonical column ordering and unit glossary. The data endpoint is
//
//	GET <portal>/api/v1/data/<instrument>?start=<ts>&end=<ts>&email=<addr>&api_key=<key>
//
// and answers with a GeoJSON-like envelope whose
// features[0].properties.data holds one entry per timestamp:
//
//	{"time": "2023-12-17T18:45:56Z", "test": "false", "measurements": {"ws": 1.55, "rain": 1}}
//
// Measurement keys are shortnames, abbreviated sensor/field identifiers such
// as "t1" (HTU21D temperature) or "wd" (wind direction). Portals cap the
// number of datapoints per request; oversized requests come back as an
// "errors" list instead of features and must be subdivided by the caller.
//
// # Timestamps
//
// User-supplied range bounds use "YYYY-MM-DD HH:MM:SS" at second precision.
// Observation timestamps carry a UTC marker ("2023-12-17T00:00:04Z").
// CHORDS days do not run midnight to midnight; depending on the portal a new
// day starts at 0600Z, 0700Z, or 0800Z, which is why ranges and daily clock
// windows are specified to the second.
//
// # Compass Derivation
//
// Directional shortnames (wd, wgd, wind_direction) hold a bearing in integer
// degrees. Normalization derives an adjacent "<field>_compass_dir" column
// holding one of the eight compass labels N, NE, E, SE, S, SW, W, NW, with
// bucket edges at 22.5, 67.5, ..., 337.5 degrees and 337.5-360 wrapping back
// to N. Bearings outside [0, 360] produce the caller's null marker; the
// original bearing column is always kept.
//
// # Column Ordering
//
// Measurement maps carry no inherent order, so output columns are sorted by
// the portal's canonical field list; shortnames the portal does not know
// sort to the end in stable discovery order. The header row always begins
// with "time".
package domain
