package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemeta/pkg/core"
	"github.com/aretw0/notemeta/pkg/note"
)

// loadFlags select which files of a directory become notes.
type loadFlags struct {
	recursive bool
	include   string
}

func (f *loadFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.recursive, "recursive", "r", true, "Walk directories recursively")
	cmd.Flags().StringVar(&f.include, "include", "", "Glob of files to load from directories (e.g. **/*.md)")
}

// open loads paths, with flags overriding the config file.
func (a *app) open(cmd *cobra.Command, f *loadFlags, paths []string) (*note.Collection, error) {
	recursive := a.cfg.Recursive
	if cmd.Flags().Changed("recursive") {
		recursive = f.recursive
	}
	include := a.cfg.Include
	if cmd.Flags().Changed("include") {
		include = f.include
	}
	return note.Open(paths,
		note.WithLogger(a.logger),
		note.WithRecursive(recursive),
		note.WithInclude(include),
	)
}

// renderFlags control how edited metadata is written back.
type renderFlags struct {
	placement string
	inplace   bool
	dryRun    bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.placement, "placement", "", "Where the consolidated inline block goes: top or bottom")
	cmd.Flags().BoolVar(&f.inplace, "inplace", true, "Rewrite inline entries on their own line instead of consolidating them")
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "n", false, "Print the result instead of writing files")
}

// commit renders notes and writes them, or prints them on dry runs.
// defaultInplace applies when the flag is not given.
func (a *app) commit(cmd *cobra.Command, f *renderFlags, notes []*note.Note, defaultInplace bool) error {
	placement, err := a.cfg.PlacementValue()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("placement") {
		if placement, err = core.ParsePlacement(f.placement); err != nil {
			return err
		}
	}
	inplace := defaultInplace
	if cmd.Flags().Changed("inplace") {
		inplace = f.inplace
	}

	for _, n := range notes {
		if err := n.UpdateContent(placement, inplace, !f.dryRun); err != nil {
			return err
		}
		if f.dryRun {
			fmt.Fprintf(a.out, "==> %s <==\n%s", n.Path, n.Content)
			continue
		}
		a.logger.Info("note updated", "path", n.Path)
	}
	return nil
}

// parseMetaQuery parses "key" or "key=v1,v2".
func parseMetaQuery(s string, t core.MetadataType) (note.MetaQuery, error) {
	key, raw, found := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if key == "" {
		return note.MetaQuery{}, fmt.Errorf("%w: %q", core.ErrEmptyKey, s)
	}
	q := note.MetaQuery{Key: key, Type: t}
	if found {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				q.Values = append(q.Values, v)
			}
		}
	}
	return q, nil
}
