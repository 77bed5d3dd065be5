package domain

// RawObservation is one entry of a portal data response: a timestamp string
// like "2023-12-17T18:45:56Z", a test flag serialized as "true"/"false", and
// the measurement map keyed by shortname.
type RawObservation struct {
	Time         string
	Test         string
	Measurements map[string]any
}

// Dataset holds the assembled result for one instrument: parallel sequences
// of timestamps, normalized measurement maps, and test flags. The three must
// always have equal length; Validate checks that invariant before the
// dataset is serialized.
type Dataset struct {
	Times        []string
	Observations []map[string]any
	Tests        []string

	// TotalMeasurements counts raw measurement values across all
	// observations, for reporting. Maintained by the collector against the
	// raw maps; derived compass columns do not count.
	TotalMeasurements int
}

// Append adds one normalized observation to the dataset.
func (d *Dataset) Append(timestamp, test string, fields map[string]any) {
	d.Times = append(d.Times, timestamp)
	d.Observations = append(d.Observations, fields)
	d.Tests = append(d.Tests, test)
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	return len(d.Times)
}

// HasData reports whether any observation was collected.
func (d *Dataset) HasData() bool {
	return len(d.Times) > 0 && len(d.Observations) > 0 && len(d.Tests) > 0
}

// Validate enforces the parallel-length invariant. A violation indicates an
// internal construction bug and is returned as a CountMismatchError.
func (d *Dataset) Validate() error {
	if len(d.Times) != len(d.Observations) || len(d.Times) != len(d.Tests) {
		return &CountMismatchError{
			Times:        len(d.Times),
			Observations: len(d.Observations),
			Tests:        len(d.Tests),
		}
	}
	return nil
}
