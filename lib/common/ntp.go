package common

import (
	"time"

	"github.com/beevik/ntp"
)

const DefaultNTPServer = "pool.ntp.org"

// MaxClockOffset is the tolerated gap between the local clock and NTP time.
// The ledger height ticker derives the sequence counter from the local clock,
// so a drifted clock skews every deliberation window on this node.
var MaxClockOffset = 5 * time.Second

func CheckClockOffset(server string) (time.Duration, error) {
	if len(server) < 1 {
		server = DefaultNTPServer
	}

	resp, err := ntp.Query(server)
	if err != nil {
		return 0, err
	}
	if err := resp.Validate(); err != nil {
		return 0, err
	}

	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}
	if offset > MaxClockOffset {
		log.Warn("local clock drifts from ntp", "server", server, "offset", resp.ClockOffset)
	}

	return resp.ClockOffset, nil
}
