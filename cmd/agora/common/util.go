package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"agoranet.io/agora/lib/errors"
)

/**
 * Issue a message on Stderr then exit with an error code
 */
func PrintFlagsError(cmd *cobra.Command, flagName string, err error) {
	if err != nil {
		var errorString string
		if agoraError, ok := err.(*errors.Error); ok {
			errorString = agoraError.Message
		} else {
			errorString = err.Error()
		}

		fmt.Fprintf(os.Stderr, "error: invalid '%s'; %s\n\n", flagName, errorString)
	}

	cmd.Help()

	os.Exit(1)
}

func PrintError(cmd *cobra.Command, err error) {
	if err != nil {
		var errorString string
		if agoraError, ok := err.(*errors.Error); ok {
			errorString = agoraError.Message
		} else {
			errorString = err.Error()
		}

		fmt.Fprintf(os.Stderr, "error: %s\n\n", errorString)
	}

	cmd.Help()

	os.Exit(1)
}

type ListFlags []string

func (i *ListFlags) Type() string {
	return "list"
}

func (i *ListFlags) String() string {
	return strings.Join([]string(*i), " ")
}

func (i *ListFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}
