package ingester

import "time"

const (
	defaultWorkerCount   = 8
	defaultPollInterval  = 12 * time.Second
	defaultFlushSize     = 500
	defaultFlushInterval = 5 * time.Second
	defaultWriteRPS      = 50
)

// Lookup outcomes reported to metrics.
const (
	OutcomeFound   = "found"
	OutcomeMissing = "missing"
	OutcomeFailed  = "failed"
)
