package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	agoracommon "agoranet.io/agora/lib/common"
	"agoranet.io/agora/lib/common/keypair"
	"agoranet.io/agora/lib/governance"
	"agoranet.io/agora/lib/storage"

	"agoranet.io/agora/cmd/agora/common"
)

var (
	genesisCmd *cobra.Command
)

func init() {
	var genesisCmd = &cobra.Command{
		Use:   "genesis <guardian public key>",
		Short: "initialize a new ledger",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			flagName, err := MakeGenesisLedger(args[0], flagNetworkID, flagStorageConfigString)
			if len(flagName) != 0 || err != nil {
				common.PrintFlagsError(c, flagName, err)
			}

			fmt.Println("successfully created the genesis chronicle")
		},
	}

	genesisCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	genesisCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")

	rootCmd.AddCommand(genesisCmd)
}

//
// Create the genesis chronicle using the provided parameters
//
// This function is separate, and public, to allow it to be used from `run`
// so it can provide the same behavior (defaults, error messages).
//
// The given address becomes the guardian of the ledger: the only identity
// allowed to register, terminate and reconfigure initiatives.
//
// Returns:
//   If an error happened, returns a tuple of (string, error).
//   The string argument represents the name of the flag which errored,
//   and error is the more detailed error.
//   Note that only one needs be non-`nil` for it to be considered an error.
//
func MakeGenesisLedger(addressStr, networkID, storageURI string) (string, error) {
	var err error
	var kp keypair.KP
	var storageConfig *storage.Config

	if kp, err = keypair.Parse(addressStr); err != nil {
		return "<guardian public key>", err
	}

	if len(networkID) == 0 {
		return "--network-id", errors.New("--network-id must be provided")
	}

	// Use the default value
	if len(storageURI) == 0 {
		// We try to get the env value first, before doing IO which could fail
		storageURI = agoracommon.GetENVValue("AGORA_STORAGE", "")
		// No env, use the default (current directory)
		if len(storageURI) == 0 {
			if currentDirectory, err := os.Getwd(); err == nil {
				if currentDirectory, err = filepath.Abs(currentDirectory); err == nil {
					storageURI = fmt.Sprintf("file://%s/db", currentDirectory)
				}
			}
			// If any of the previous condition failed
			if len(storageURI) == 0 {
				return "--storage", err
			}
		}
	}

	if storageConfig, err = storage.NewConfigFromString(storageURI); err != nil {
		return "--storage", err
	}

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		return "--storage", fmt.Errorf("failed to initialize storage: %v", err)
	}
	defer st.Close()

	if _, err = governance.MakeGenesisChronicle(st, kp.Address(), networkID); err != nil {
		return "<guardian public key>", err
	}

	return "", nil
}
