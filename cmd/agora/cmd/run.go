package cmd

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/http2"

	logging "github.com/inconshreveable/log15"
	isatty "github.com/mattn/go-isatty"
	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"github.com/ulule/limiter/v3"

	agoracommon "agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/common/keypair"
	"agoranet.io/agora/lib/governance"
	"agoranet.io/agora/lib/metrics"
	"agoranet.io/agora/lib/network"
	"agoranet.io/agora/lib/node"
	"agoranet.io/agora/lib/node/runner"
	"agoranet.io/agora/lib/storage"

	"agoranet.io/agora/cmd/agora/common"
)

const defaultNetwork string = "http"
const defaultPort int = 12345
const defaultHost string = "0.0.0.0"
const defaultLogLevel logging.Lvl = logging.LvlInfo

var (
	flagKPSecretSeed string = agoracommon.GetENVValue("AGORA_SECRET_SEED", "")
	flagNetworkID    string = agoracommon.GetENVValue("AGORA_NETWORK_ID", "")
	flagLogLevel     string = agoracommon.GetENVValue("AGORA_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput    string = agoracommon.GetENVValue("AGORA_LOG_OUTPUT", "")
	flagHTTPLog      string = agoracommon.GetENVValue("AGORA_HTTP_LOG", "")
	flagVerbose      bool   = agoracommon.GetENVValue("AGORA_VERBOSE", "0") == "1"
	flagMetrics      bool   = agoracommon.GetENVValue("AGORA_METRICS", "0") == "1"

	flagEndpointString string = agoracommon.GetENVValue(
		"AGORA_ENDPOINT",
		fmt.Sprintf("%s://%s:%d", defaultNetwork, defaultHost, defaultPort),
	)
	flagStorageConfigString string
	flagTLSCertFile         string = agoracommon.GetENVValue("AGORA_TLS_CERT", "agora.crt")
	flagTLSKeyFile          string = agoracommon.GetENVValue("AGORA_TLS_KEY", "agora.key")
	flagBlockTimeString     string = agoracommon.GetENVValue("AGORA_BLOCK_TIME", "5s")

	flagRateLimitAPI        common.ListFlags
	flagHTTPCacheAdapter    string = agoracommon.GetENVValue("AGORA_HTTP_CACHE_ADAPTER", "")
	flagHTTPCachePoolSize   int    = agoracommon.HTTPCachePoolSize
	flagHTTPCacheRedisAddrs common.ListFlags
)

var (
	runCmd *cobra.Command

	kp               *keypair.Full
	nodeEndpoint     *agoracommon.Endpoint
	storageConfig    *storage.Config
	blockTime        time.Duration
	rateLimitRuleAPI agoracommon.RateLimitRule
	logLevel         logging.Lvl
	log              logging.Logger
)

func init() {
	var err error
	var flagGenesis string

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run agora node",
		Run: func(c *cobra.Command, args []string) {
			// If `--genesis` was provided, perform `agora genesis` before
			// starting the node. This allows one-step startup from scratch.
			if len(flagGenesis) != 0 {
				flagName, err := MakeGenesisLedger(flagGenesis, flagNetworkID, flagStorageConfigString)
				if len(flagName) != 0 || err != nil {
					common.PrintFlagsError(c, flagName, err)
				}
			}

			parseFlagsNode()

			runNode()
			return
		},
	}

	// storage
	var currentDirectory string
	if currentDirectory, err = os.Getwd(); err != nil {
		common.PrintFlagsError(runCmd, "--storage", err)
	}
	if currentDirectory, err = filepath.Abs(currentDirectory); err != nil {
		common.PrintFlagsError(runCmd, "--storage", err)
	}
	flagStorageConfigString = agoracommon.GetENVValue("AGORA_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	runCmd.Flags().StringVar(&flagGenesis, "genesis", flagGenesis, "performs the 'genesis' command before running node. Syntax: <guardian public key>")
	runCmd.Flags().StringVar(&flagKPSecretSeed, "secret-seed", flagKPSecretSeed, "secret seed of this node")
	runCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	runCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	runCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	runCmd.Flags().StringVar(&flagHTTPLog, "http-log", flagHTTPLog, "set log file for the http requests")
	runCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	runCmd.Flags().BoolVar(&flagMetrics, "metrics", flagMetrics, "expose prometheus metrics")
	runCmd.Flags().StringVar(&flagEndpointString, "endpoint", flagEndpointString, "endpoint uri to listen on")
	runCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	runCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", flagTLSCertFile, "tls certificate file")
	runCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", flagTLSKeyFile, "tls key file")
	runCmd.Flags().StringVar(&flagBlockTimeString, "block-time", flagBlockTimeString, "interval between ledger sequence advances")
	runCmd.Flags().Var(&flagRateLimitAPI, "rate-limit-api", "rate limit for the api: [<ip>=]<limit>-<period>, ex) '10-S' '3.3.3.3=1000-M'")
	runCmd.Flags().StringVar(&flagHTTPCacheAdapter, "http-cache-adapter", flagHTTPCacheAdapter, "http cache adapter: {mem, redis}")
	runCmd.Flags().IntVar(&flagHTTPCachePoolSize, "http-cache-pool-size", flagHTTPCachePoolSize, "http cache pool size")
	runCmd.Flags().Var(&flagHTTPCacheRedisAddrs, "http-cache-redis-addrs", "http cache redis address: <name>=<addr>")

	rootCmd.AddCommand(runCmd)
}

func parseFlagRateLimit(l common.ListFlags, defaultRate limiter.Rate) (rule agoracommon.RateLimitRule, err error) {
	if len(l) < 1 {
		rule = agoracommon.NewRateLimitRule(defaultRate)
		return
	}

	var givenDefault *limiter.Rate
	byIPAddress := map[string]limiter.Rate{}
	for _, s := range l {
		var ip, r string

		parsed := strings.SplitN(s, "=", 2)
		if len(parsed) == 1 {
			r = s
		} else {
			ip = parsed[0]
			r = parsed[1]
			if net.ParseIP(ip) == nil {
				err = fmt.Errorf("invalid ip address: '%s'", ip)
				return
			}
		}

		var rate limiter.Rate
		if rate, err = limiter.NewRateFromFormatted(strings.ToUpper(r)); err != nil {
			return
		}

		if len(ip) > 0 {
			byIPAddress[ip] = rate
		} else {
			givenDefault = &rate
		}
	}

	if givenDefault == nil {
		givenDefault = &defaultRate
	}

	rule = agoracommon.RateLimitRule{
		Default:     *givenDefault,
		ByIPAddress: byIPAddress,
	}

	return
}

func parseFlagHTTPCacheRedisAddrs(l common.ListFlags) (addrs map[string]string, err error) {
	addrs = map[string]string{}
	for _, s := range l {
		parsed := strings.SplitN(s, "=", 2)
		if len(parsed) != 2 {
			err = fmt.Errorf("redis address expects '<name>=<addr>': '%s'", s)
			return
		}
		addrs[parsed[0]] = parsed[1]
	}

	return
}

func parseFlagsNode() {
	var err error

	if len(flagNetworkID) < 1 {
		common.PrintFlagsError(runCmd, "--network-id", errors.New("--network-id must be given"))
	}
	if len(flagKPSecretSeed) < 1 {
		common.PrintFlagsError(runCmd, "--secret-seed", errors.New("must be given"))
	}

	var parsedKP keypair.KP
	parsedKP, err = keypair.Parse(flagKPSecretSeed)
	if err != nil {
		common.PrintFlagsError(runCmd, "--secret-seed", err)
	} else {
		kp = parsedKP.(*keypair.Full)
	}

	if p, err := agoracommon.ParseEndpoint(flagEndpointString); err != nil {
		common.PrintFlagsError(runCmd, "--endpoint", err)
	} else {
		nodeEndpoint = p
		flagEndpointString = nodeEndpoint.String()
	}

	if strings.ToLower(nodeEndpoint.Scheme) == "https" {
		if _, err = os.Stat(flagTLSCertFile); os.IsNotExist(err) {
			common.PrintFlagsError(runCmd, "--tls-cert", err)
		}
		if _, err = os.Stat(flagTLSKeyFile); os.IsNotExist(err) {
			common.PrintFlagsError(runCmd, "--tls-key", err)
		}

		queries := nodeEndpoint.Query()
		queries.Add("TLSCertFile", flagTLSCertFile)
		queries.Add("TLSKeyFile", flagTLSKeyFile)
		nodeEndpoint.RawQuery = queries.Encode()
	}

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		common.PrintFlagsError(runCmd, "--storage", err)
	}

	if blockTime, err = time.ParseDuration(flagBlockTimeString); err != nil || blockTime <= 0 {
		common.PrintFlagsError(runCmd, "--block-time", fmt.Errorf("invalid duration: '%s'", flagBlockTimeString))
	}

	if rateLimitRuleAPI, err = parseFlagRateLimit(flagRateLimitAPI, agoracommon.RateLimitAPI); err != nil {
		common.PrintFlagsError(runCmd, "--rate-limit-api", err)
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		common.PrintFlagsError(runCmd, "--log-level", err)
	}

	logHandler := logging.StdoutHandler

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
		if !isatty.IsTerminal(os.Stdout.Fd()) {
			logHandler = logging.StreamHandler(os.Stdout, agoracommon.JsonFormatEx(false, true))
		}
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, agoracommon.JsonFormatEx(false, true)); err != nil {
			common.PrintFlagsError(runCmd, "--log-output", err)
		}
	}

	logHandler = logging.CallerFileHandler(logHandler)

	log = logging.New("module", "main")
	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	governance.SetLogging(logLevel, logHandler)
	network.SetLogging(logLevel, logHandler)
	runner.SetLogging(logLevel, logHandler)

	log.Info("Starting Agora")

	// print flags
	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tnetwork-id", flagNetworkID)
	parsedFlags = append(parsedFlags, "\n\tendpoint", flagEndpointString)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorageConfigString)
	parsedFlags = append(parsedFlags, "\n\tblock-time", flagBlockTimeString)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)
	parsedFlags = append(parsedFlags, "\n\trate-limit-api", rateLimitRuleAPI)
	parsedFlags = append(parsedFlags, "\n\thttp-cache-adapter", flagHTTPCacheAdapter)

	log.Debug("parsed flags:", parsedFlags...)

	if flagVerbose {
		http2.VerboseLogs = true
	}
}

func runNode() {
	if flagMetrics {
		metrics.InitPrometheusMetrics()
		metrics.SetVersion()
	}

	localNode, err := node.NewLocalNode(kp, nodeEndpoint, "")
	if err != nil {
		log.Error("failed to launch main node", "error", err)
		return
	}

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)

		os.Exit(1)
	}

	conf := agoracommon.NewConfig([]byte(flagNetworkID))
	conf.BlockTime = blockTime
	conf.RateLimitRuleAPI = rateLimitRuleAPI
	conf.HTTPLogOutput = flagHTTPLog
	conf.HTTPCacheAdapter = flagHTTPCacheAdapter
	conf.HTTPCachePoolSize = flagHTTPCachePoolSize
	if conf.HTTPCacheRedisAddrs, err = parseFlagHTTPCacheRedisAddrs(flagHTTPCacheRedisAddrs); err != nil {
		common.PrintFlagsError(runCmd, "--http-cache-redis-addrs", err)
	}

	ledger := governance.NewLedger(st)

	// Execution group.
	var g run.Group
	{
		nr, err := runner.NewNodeRunner(localNode, ledger, st, conf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

		g.Add(func() error {
			if err := nr.Start(); err != nil {
				log.Crit("failed to start node", "error", err)
				return err
			}
			return nil
		}, func(error) {
			nr.Stop()
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return common.Interrupt(cancel)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
