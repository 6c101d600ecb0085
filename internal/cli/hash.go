package cli

import (
	"github.com/spf13/cobra"

	"github.com/veldt-labs/quartermaster/internal/legacyhash"
)

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <username>",
		Short: "Compute the legacy hash for a username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			out.Print(HashResult{
				Username: args[0],
				Hash:     legacyhash.Hash64(args[0]),
			})
			return nil
		},
	}
}
