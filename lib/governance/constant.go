package governance

import "time"

const (
	// BlockTime is the wall-clock duration of one sequence unit. The ledger
	// height ticker advances the sequence counter once per BlockTime.
	BlockTime time.Duration = 5 * time.Second
)

const (
	// MinDeliberationSpan is one day expressed in sequence units.
	MinDeliberationSpan uint64 = 17280

	// MaxDeliberationSpan is thirty days expressed in sequence units.
	MaxDeliberationSpan uint64 = 518400

	MaxTitleLength   int = 50
	MaxSummaryLength int = 500
)
