package main

import (
	"github.com/spf13/cobra"
)

func newConsolidateCmd(a *app) *cobra.Command {
	var (
		load   loadFlags
		render renderFlags
	)

	cmd := &cobra.Command{
		Use:   "consolidate [paths...]",
		Short: "Gather inline metadata into one block",
		Long: `Move every inline entry of each note into a single block at the top or
bottom of the note. With --inplace=true notes are only normalized.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open(cmd, &load, args)
			if err != nil {
				return err
			}
			return a.commit(cmd, &render, c.Notes(), false)
		},
	}

	load.register(cmd)
	render.register(cmd)
	return cmd
}
