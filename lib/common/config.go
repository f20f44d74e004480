package common

import (
	"time"
)

const (
	HTTPCacheMemoryAdapterName = "mem"
	HTTPCacheRedisAdapterName  = "redis"
	HTTPCachePoolSize          = 10000
)

//
// Config carries the runtime settings shared across the node: the
// ledger sequence interval, the network id used for signing and the
// settings of the outer HTTP surface.
//
type Config struct {
	BlockTime time.Duration

	NetworkID []byte

	// Those fields are not ledger-related
	RateLimitRuleAPI RateLimitRule

	HTTPLogOutput string

	HTTPCacheAdapter    string
	HTTPCachePoolSize   int
	HTTPCacheRedisAddrs map[string]string
}

func NewConfig(networkID []byte) Config {
	p := Config{}

	p.BlockTime = 5 * time.Second
	p.NetworkID = networkID

	p.RateLimitRuleAPI = NewRateLimitRule(RateLimitAPI)

	p.HTTPCachePoolSize = HTTPCachePoolSize

	return p
}
