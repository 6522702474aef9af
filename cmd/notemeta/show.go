package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/notemeta/pkg/core"
	"github.com/aretw0/notemeta/pkg/note"
)

// noteView is the serialized form of a note's metadata.
type noteView struct {
	Path        string              `json:"path" yaml:"path"`
	Frontmatter map[string][]string `json:"frontmatter,omitempty" yaml:"frontmatter,omitempty"`
	Inline      map[string][]string `json:"inline,omitempty" yaml:"inline,omitempty"`
}

func viewOf(n *note.Note, t core.MetadataType) noteView {
	v := noteView{Path: n.Path}
	if t.Matches(core.Frontmatter) {
		v.Frontmatter = n.Metadata.ToMap(core.Frontmatter)
	}
	if t.Matches(core.Inline) {
		v.Inline = n.Metadata.ToMap(core.Inline)
	}
	return v
}

func newShowCmd(a *app) *cobra.Command {
	var (
		load     loadFlags
		format   string
		typeName string
	)

	cmd := &cobra.Command{
		Use:   "show [paths...]",
		Short: "Print the metadata of notes",
		Long:  `Print the frontmatter and inline metadata of every note as JSON (default) or YAML.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := core.ParseMetadataType(typeName)
			if err != nil {
				return err
			}
			c, err := a.open(cmd, &load, args)
			if err != nil {
				return err
			}

			views := make([]noteView, 0, c.Len())
			for _, n := range c.Notes() {
				views = append(views, viewOf(n, t))
			}

			switch format {
			case "json":
				encoder := json.NewEncoder(a.out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(views)
			case "yaml":
				encoder := yaml.NewEncoder(a.out)
				encoder.SetIndent(2)
				if err := encoder.Encode(views); err != nil {
					return err
				}
				return encoder.Close()
			}
			return fmt.Errorf("unknown format %q (want json or yaml)", format)
		},
	}

	load.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&typeName, "type", "t", "any", "Metadata type: frontmatter, inline or any")
	return cmd
}
