package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	agoracommon "agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/common/keypair"
	"agoranet.io/agora/lib/governance"

	"agoranet.io/agora/cmd/agora/common"
)

var (
	proposeCmd *cobra.Command

	flagNode string = agoracommon.GetENVValue("AGORA_NODE", "http://127.0.0.1:12345")
	flagSpan uint64
)

func init() {
	proposeCmd = &cobra.Command{
		Use:   "propose <title> <summary>",
		Short: "Register a new initiative (guardian only)",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			kp := parseFlagsClient(c)

			m := governance.NewProposal(kp.Address(), args[0], args[1], flagSpan)
			m.Sign(kp, []byte(flagNetworkID))

			body, err := m.Serialize()
			if err != nil {
				common.PrintError(c, err)
			}

			initiative, err := newClient().SubmitProposal(body)
			if err != nil {
				common.PrintError(c, err)
			}

			fmt.Printf("initiative #%d registered, deliberation ends at sequence %d\n", initiative.ID, initiative.ExpirySequence)
		},
	}

	proposeCmd.Flags().StringVar(&flagNode, "node", flagNode, "endpoint of the node to talk to")
	proposeCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	proposeCmd.Flags().StringVar(&flagKPSecretSeed, "secret-seed", flagKPSecretSeed, "secret seed to sign with")
	proposeCmd.Flags().Uint64Var(&flagSpan, "span", 0, "deliberation span in sequence units, 0 means the ledger's standard span")

	rootCmd.AddCommand(proposeCmd)
}

// parseFlagsClient validates the flags every client command shares.
func parseFlagsClient(c *cobra.Command) *keypair.Full {
	if len(flagNetworkID) < 1 {
		common.PrintFlagsError(c, "--network-id", errors.New("--network-id must be given"))
	}
	if len(flagKPSecretSeed) < 1 {
		common.PrintFlagsError(c, "--secret-seed", errors.New("must be given"))
	}

	parsedKP, err := keypair.Parse(flagKPSecretSeed)
	if err != nil {
		common.PrintFlagsError(c, "--secret-seed", err)
	}

	full, ok := parsedKP.(*keypair.Full)
	if !ok {
		common.PrintFlagsError(c, "--secret-seed", errors.New("not a secret seed"))
		os.Exit(1)
	}

	return full
}
