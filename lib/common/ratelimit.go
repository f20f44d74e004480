package common

import (
	"fmt"
	"strings"
	"time"

	"github.com/ulule/limiter/v3"
)

var (
	// RateLimitAPI is the default rate limit for the public HTTP API.
	RateLimitAPI limiter.Rate = limiter.Rate{
		Period: time.Minute,
		Limit:  100,
	}
)

type RateLimitRule struct {
	Default     limiter.Rate
	ByIPAddress map[string]limiter.Rate
}

func NewRateLimitRule(rate limiter.Rate) RateLimitRule {
	return RateLimitRule{
		Default:     rate,
		ByIPAddress: map[string]limiter.Rate{},
	}
}

func (r RateLimitRule) IsEmpty() bool {
	return r.Default.Limit < 1 && len(r.ByIPAddress) < 1
}

func (r RateLimitRule) String() string {
	if len(r.Default.Formatted) > 0 {
		return r.Default.Formatted
	}

	return fmt.Sprintf("%d-%s", r.Default.Limit, strings.ToUpper(formatLimiterPeriod(r.Default.Period)))
}

func formatLimiterPeriod(period time.Duration) string {
	switch period {
	case time.Second:
		return "s"
	case time.Minute:
		return "m"
	case time.Hour:
		return "h"
	}

	return period.String()
}

// ParseRateLimitRule parses rule like "100-M" or "<ip>=100-M"; multiple rules
// are separated by whitespace, the rule without ip becomes the default.
func ParseRateLimitRule(s string) (rule RateLimitRule, err error) {
	rule = NewRateLimitRule(RateLimitAPI)

	for _, w := range strings.Fields(s) {
		var rate limiter.Rate

		parsed := strings.SplitN(w, "=", 2)
		if len(parsed) == 1 {
			if rate, err = limiter.NewRateFromFormatted(parsed[0]); err != nil {
				return
			}
			rule.Default = rate
			continue
		}

		if rate, err = limiter.NewRateFromFormatted(parsed[1]); err != nil {
			return
		}
		rule.ByIPAddress[parsed[0]] = rate
	}

	return
}
