package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemeta/pkg/core"
	"github.com/aretw0/notemeta/pkg/note"
)

func newHasCmd(a *app) *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "has [file] [key] [values...]",
		Short: "Check whether a note holds a key and values",
		Long: `Print true and exit 0 when the note has the key with every given value,
otherwise print false and exit 1.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := core.ParseMetadataType(typeName)
			if err != nil {
				return err
			}
			n, err := note.Load(args[0], note.WithLogger(a.logger))
			if err != nil {
				return err
			}

			ok := n.Metadata.Has(args[1], args[2:], t)
			fmt.Fprintln(a.out, ok)
			if !ok {
				return errNoMatch
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "any", "Metadata type: frontmatter, inline or any")
	return cmd
}
