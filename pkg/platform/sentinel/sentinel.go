package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, key systems and DHT
// publishers return these (optionally wrapped) so services can translate them
// into domain errors:
// - ErrNotFound: record, key or DHT value does not exist
// - ErrConflict: record already exists under the same identity
// - ErrUnavailable: backend temporarily unavailable
//
// For caller-facing failures (bad network name, publish failure), use
// pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
