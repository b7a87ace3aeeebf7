package cmd

import (
	"fmt"
	"github.com/paratype/paratype/descriptor"
	"github.com/paratype/paratype/internal/log"
	"github.com/spf13/cobra"
	"io"
	"log/slog"
	"os"
)

var SimplifyCmd = &cobra.Command{
	Use:          "simplify [file.json]",
	Short:        "Canonicalize a JSON list of type descriptors",
	RunE:         runSimplify,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
}

var (
	asJSON   *bool
	logLevel *int
)

func init() {
	asJSON = SimplifyCmd.Flags().Bool("json", false, "print the JSON encoding instead of the readable form")
	logLevel = SimplifyCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

func runSimplify(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*logLevel))

	var in []byte
	var err error
	if len(args) == 1 {
		in, err = os.ReadFile(args[0])
	} else {
		in, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("could not read input: %w", err)
	}

	ds, err := descriptor.UnmarshalList(in)
	if err != nil {
		return fmt.Errorf("could not decode descriptors: %w", err)
	}

	simplified, err := descriptor.SimplifyExpandList(descriptor.Builtins(), ds)
	if err != nil {
		return err
	}

	if *asJSON {
		out, err := descriptor.MarshalList(simplified)
		if err != nil {
			return fmt.Errorf("could not encode result: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}
	for _, d := range simplified {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), d.String())
	}
	return nil
}
