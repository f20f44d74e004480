package cmd

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	cmdcommon "agoranet.io/agora/cmd/agora/common"
	"agoranet.io/agora/lib/common"
)

func TestParseFlagRateLimit(t *testing.T) {
	{ // weired value
		testCmd := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)

		var fr cmdcommon.ListFlags
		testCmd.Var(&fr, "rate-limit-api", "")

		cmdline := "--rate-limit-api=showme"
		err := testCmd.Parse(strings.Fields(cmdline))
		require.NoError(t, err)

		_, err = parseFlagRateLimit(fr, common.RateLimitAPI)
		require.Error(t, err)
	}

	{ // valid value
		testCmd := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)

		var fr cmdcommon.ListFlags
		testCmd.Var(&fr, "rate-limit-api", "")

		cmdline := "--rate-limit-api=10-S"
		err := testCmd.Parse(strings.Fields(cmdline))
		require.NoError(t, err)

		rule, err := parseFlagRateLimit(fr, common.RateLimitAPI)
		require.NoError(t, err)
		require.Equal(t, time.Second, rule.Default.Period)
		require.Equal(t, int64(10), rule.Default.Limit)
		require.Equal(t, 0, len(rule.ByIPAddress))
	}

	{ // multiple value, last will be choose.
		testCmd := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)

		var fr cmdcommon.ListFlags
		testCmd.Var(&fr, "rate-limit-api", "")

		cmdline := "--rate-limit-api=10-S --rate-limit-api=9-M"
		err := testCmd.Parse(strings.Fields(cmdline))
		require.NoError(t, err)

		rule, err := parseFlagRateLimit(fr, common.RateLimitAPI)
		require.NoError(t, err)
		require.Equal(t, time.Minute, rule.Default.Period)
		require.Equal(t, int64(9), rule.Default.Limit)
		require.Equal(t, 0, len(rule.ByIPAddress))
	}

	{ // with ip address, but `common.RateLimitAPI` will be default
		testCmd := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)

		var fr cmdcommon.ListFlags
		testCmd.Var(&fr, "rate-limit-api", "")

		allowedIP := "1.2.3.4"
		cmdline := fmt.Sprintf("--rate-limit-api=%s=8-S", allowedIP)
		err := testCmd.Parse(strings.Fields(cmdline))
		require.NoError(t, err)

		rule, err := parseFlagRateLimit(fr, common.RateLimitAPI)
		require.NoError(t, err)
		require.Equal(t, common.RateLimitAPI.Period, rule.Default.Period)
		require.Equal(t, common.RateLimitAPI.Limit, rule.Default.Limit)
		require.Equal(t, 1, len(rule.ByIPAddress))
		require.NotNil(t, rule.ByIPAddress[allowedIP])
		require.Equal(t, time.Second, rule.ByIPAddress[allowedIP].Period)
		require.Equal(t, int64(8), rule.ByIPAddress[allowedIP].Limit)
	}

	{ // unlimit
		testCmd := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)

		var fr cmdcommon.ListFlags
		testCmd.Var(&fr, "rate-limit-api", "")

		cmdline := "--rate-limit-api=0-S"
		err := testCmd.Parse(strings.Fields(cmdline))
		require.NoError(t, err)

		rule, err := parseFlagRateLimit(fr, common.RateLimitAPI)
		require.NoError(t, err)
		require.Equal(t, time.Second, rule.Default.Period)
		require.Equal(t, int64(0), rule.Default.Limit)
		require.Equal(t, 0, len(rule.ByIPAddress))
	}

	{ // lowercase
		testCmd := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)

		var fr cmdcommon.ListFlags
		testCmd.Var(&fr, "rate-limit-api", "")

		cmdline := "--rate-limit-api=10-s"
		err := testCmd.Parse(strings.Fields(cmdline))
		require.NoError(t, err)

		rule, err := parseFlagRateLimit(fr, common.RateLimitAPI)
		require.NoError(t, err)
		require.Equal(t, time.Second, rule.Default.Period)
		require.Equal(t, int64(10), rule.Default.Limit)
		require.Equal(t, 0, len(rule.ByIPAddress))
	}
}

func TestParseFlagHTTPCacheRedisAddrs(t *testing.T) {
	{
		addrs, err := parseFlagHTTPCacheRedisAddrs(cmdcommon.ListFlags{"server0=localhost:6379", "server1=localhost:6380"})
		require.NoError(t, err)
		require.Equal(t, 2, len(addrs))
		require.Equal(t, "localhost:6379", addrs["server0"])
		require.Equal(t, "localhost:6380", addrs["server1"])
	}

	{ // missing name
		_, err := parseFlagHTTPCacheRedisAddrs(cmdcommon.ListFlags{"localhost:6379"})
		require.Error(t, err)
	}
}
