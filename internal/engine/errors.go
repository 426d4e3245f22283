package engine

import "errors"

// ErrInvalidMeasurement marks a raw value that is missing, non-finite, or
// outside the criterion's physical domain. No partial result is produced.
var ErrInvalidMeasurement = errors.New("invalid measurement")

// ErrConfiguration marks an engine configuration that fails validation
// (weight sums, unknown groups, malformed curves). Fatal at process start.
var ErrConfiguration = errors.New("invalid engine configuration")
