package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhyswan/fingerprintjs/internal/murmur3"
)

// newHashCommand exposes the identifier hash directly, mainly for pinning
// regression fixtures and debugging canonical strings.
func newHashCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "hash [string]",
		Short:       "Murmur3 x64-128 hash of the argument or stdin",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				input = string(data)
			}
			fmt.Fprintln(cmd.OutOrStdout(), murmur3.SumString(input))
			return nil
		},
	}
}
