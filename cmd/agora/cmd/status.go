package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"agoranet.io/agora/cmd/agora/common"
)

var (
	statusCmd *cobra.Command

	flagParticipant  string
	flagStatusFormat string
)

func init() {
	statusCmd = &cobra.Command{
		Use:   "status [initiative id]",
		Short: "Query the ledger or the status of one initiative",
		Args:  cobra.MaximumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			encode, ok := common.DefaultEncodes[flagStatusFormat]
			if !ok {
				common.PrintFlagsError(c, "--format", nil)
			}

			cl := newClient()

			if len(args) < 1 {
				chronicle, err := cl.LoadLedger()
				if err != nil {
					common.PrintError(c, err)
				}
				encode(chronicle, os.Stdout)
				return
			}

			id := parseInitiativeIDArg(c, args[0])

			if len(flagParticipant) > 0 {
				participation, err := cl.LoadParticipation(id, flagParticipant)
				if err != nil {
					common.PrintError(c, err)
				}
				encode(participation, os.Stdout)
				return
			}

			initiative, err := cl.LoadInitiative(id)
			if err != nil {
				common.PrintError(c, err)
			}
			encode(initiative, os.Stdout)
		},
	}

	statusCmd.Flags().StringVar(&flagNode, "node", flagNode, "endpoint of the node to talk to")
	statusCmd.Flags().StringVar(&flagParticipant, "participant", flagParticipant, "report whether this address signaled the initiative")
	statusCmd.Flags().StringVar(&flagStatusFormat, "format", "prettyjson", "format={json, prettyjson, yaml}")

	rootCmd.AddCommand(statusCmd)
}
