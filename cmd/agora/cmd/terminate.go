package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"agoranet.io/agora/lib/governance"

	"agoranet.io/agora/cmd/agora/common"
)

var terminateCmd *cobra.Command

func init() {
	terminateCmd = &cobra.Command{
		Use:   "terminate <initiative id>",
		Short: "Deactivate an initiative (guardian only)",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			kp := parseFlagsClient(c)
			id := parseInitiativeIDArg(c, args[0])

			m := governance.NewTermination(kp.Address(), id)
			m.Sign(kp, []byte(flagNetworkID))

			body, err := m.Serialize()
			if err != nil {
				common.PrintError(c, err)
			}

			initiative, err := newClient().SubmitTermination(id, body)
			if err != nil {
				common.PrintError(c, err)
			}

			fmt.Printf("initiative #%d terminated with %d signals\n", initiative.ID, initiative.ConsensusTally)
		},
	}

	terminateCmd.Flags().StringVar(&flagNode, "node", flagNode, "endpoint of the node to talk to")
	terminateCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	terminateCmd.Flags().StringVar(&flagKPSecretSeed, "secret-seed", flagKPSecretSeed, "secret seed to sign with")

	rootCmd.AddCommand(terminateCmd)
}
