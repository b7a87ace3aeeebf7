package cmd

import (
	"fmt"
	"github.com/paratype/paratype/descriptor"
	"github.com/spf13/cobra"
)

var FactsCmd = &cobra.Command{
	Use:          "facts",
	Short:        "Print the platform integer facts used for canonicalization",
	RunE:         runFacts,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

func runFacts(cmd *cobra.Command, args []string) error {
	facts := descriptor.Facts()
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "native-width:    %d\n", descriptor.NativeWidth())
	_, _ = fmt.Fprintf(out, "mersenne:        %t\n", facts.Mersenne)
	_, _ = fmt.Fprintf(out, "twos-complement: %t\n", facts.TwosComplement)
	return nil
}
