package main

import (
	"fmt"

	"github.com/phanxgames/reveal"
	"github.com/spf13/cobra"
)

func newEasingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "easings",
		Short: "List easing names accepted in page descriptions and scripts",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range reveal.EasingNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
