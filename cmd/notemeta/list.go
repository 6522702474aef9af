package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemeta/pkg/core"
	"github.com/aretw0/notemeta/pkg/note"
)

func newListCmd(a *app) *cobra.Command {
	var (
		load     loadFlags
		filter   note.Filter
		has      []string
		typeName string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List the notes matching a filter",
		Long: `Load notes from files and directories and print the paths of those
passing every given condition, in load order.`,
		Example: `  notemeta list vault --has status=done --type inline
  notemeta list vault --starts-with daily --glob "2024/**"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := core.ParseMetadataType(typeName)
			if err != nil {
				return err
			}
			for _, h := range has {
				q, err := parseMetaQuery(h, t)
				if err != nil {
					return err
				}
				filter.HasMeta = append(filter.HasMeta, q)
			}

			c, err := a.open(cmd, &load, args)
			if err != nil {
				return err
			}
			if err := c.Filter(filter); err != nil {
				return err
			}

			if asJSON {
				views := make([]noteView, 0, c.Len())
				for _, n := range c.Notes() {
					views = append(views, viewOf(n, core.Any))
				}
				encoder := json.NewEncoder(a.out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(views)
			}
			for _, p := range c.Paths() {
				fmt.Fprintln(a.out, p)
			}
			return nil
		},
	}

	load.register(cmd)
	cmd.Flags().StringVar(&filter.StartsWith, "starts-with", "", "Keep file names starting with this prefix")
	cmd.Flags().StringVar(&filter.EndsWith, "ends-with", "", "Keep file names ending with this suffix")
	cmd.Flags().StringVar(&filter.Pattern, "pattern", "", "Keep file names matching this regular expression at the start")
	cmd.Flags().StringVar(&filter.Glob, "glob", "", "Keep notes whose relative path matches this glob")
	cmd.Flags().StringArrayVar(&has, "has", nil, "Keep notes with metadata key[=v1,v2] (repeatable)")
	cmd.Flags().StringVarP(&typeName, "type", "t", "any", "Metadata type used by --has")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output notes and metadata as JSON")
	return cmd
}
