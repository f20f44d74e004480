package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"agoranet.io/agora/lib/governance"

	"agoranet.io/agora/cmd/agora/common"
)

var spanCmd *cobra.Command

func init() {
	spanCmd = &cobra.Command{
		Use:   "span <sequence units>",
		Short: "Set the ledger's standard deliberation span (guardian only)",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			kp := parseFlagsClient(c)

			span, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				common.PrintFlagsError(c, "<sequence units>", err)
			}

			m := governance.NewSpanUpdate(kp.Address(), span)
			m.Sign(kp, []byte(flagNetworkID))

			body, err := m.Serialize()
			if err != nil {
				common.PrintError(c, err)
			}

			chronicle, err := newClient().SubmitSpanUpdate(body)
			if err != nil {
				common.PrintError(c, err)
			}

			fmt.Printf("standard deliberation span is now %d\n", chronicle.StandardDeliberationSpan)
		},
	}

	spanCmd.Flags().StringVar(&flagNode, "node", flagNode, "endpoint of the node to talk to")
	spanCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	spanCmd.Flags().StringVar(&flagKPSecretSeed, "secret-seed", flagKPSecretSeed, "secret seed to sign with")

	rootCmd.AddCommand(spanCmd)
}
