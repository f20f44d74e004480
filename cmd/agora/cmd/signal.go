package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"agoranet.io/agora/lib/client"
	"agoranet.io/agora/lib/governance"

	"agoranet.io/agora/cmd/agora/common"
)

var signalCmd *cobra.Command

func newClient() *client.Client {
	return client.NewClient(flagNode)
}

func parseInitiativeIDArg(c *cobra.Command, arg string) uint64 {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		common.PrintFlagsError(c, "<initiative id>", err)
	}
	return id
}

func init() {
	signalCmd = &cobra.Command{
		Use:   "signal <initiative id>",
		Short: "Cast a consensus signal on an initiative",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			kp := parseFlagsClient(c)
			id := parseInitiativeIDArg(c, args[0])

			m := governance.NewSignal(kp.Address(), id)
			m.Sign(kp, []byte(flagNetworkID))

			body, err := m.Serialize()
			if err != nil {
				common.PrintError(c, err)
			}

			participation, err := newClient().SubmitSignal(id, body)
			if err != nil {
				common.PrintError(c, err)
			}

			fmt.Printf("signal of %s recorded on initiative #%d at sequence %d\n",
				participation.Address, participation.InitiativeID, participation.ParticipationSequence)
		},
	}

	signalCmd.Flags().StringVar(&flagNode, "node", flagNode, "endpoint of the node to talk to")
	signalCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	signalCmd.Flags().StringVar(&flagKPSecretSeed, "secret-seed", flagKPSecretSeed, "secret seed to sign with")

	rootCmd.AddCommand(signalCmd)
}
