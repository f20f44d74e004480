package observer

import (
	observable "github.com/GianlucaGuarini/go-observable"
)

// GovernanceObserver fires when a governance record is committed.
// Events:
//  * "initiative-saved", "initiative-saved id-<id>"
//  * "signaled", "signaled initiative-<id>", "signaled participant-<address>"
//  * "chronicle-saved"
var GovernanceObserver = observable.New()
