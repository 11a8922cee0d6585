package main

import (
	"fmt"

	"github.com/phanxgames/reveal"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <page.yaml>",
		Short: "Check that a page description builds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := readPageSpec(args[0])
			if err != nil {
				return err
			}
			page, b, err := reveal.BuildPage(spec, nil, reveal.PageConfig{})
			if err != nil {
				return err
			}
			defer page.Dispose()
			fmt.Fprintf(cmd.OutOrStdout(),
				"ok: %d sections, %d regions, %d watchers, %d timelines, %d count-ups, %d cyclers, %d media\n",
				len(page.Sections()), len(b.Regions), len(b.Watchers), len(b.Timelines),
				len(b.CountUps), len(b.Cyclers), len(b.Media))
			return nil
		},
	}
}
