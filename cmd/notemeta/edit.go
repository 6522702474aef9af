package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemeta/pkg/core"
	"github.com/aretw0/notemeta/pkg/note"
)

// editFunc applies a metadata change to one note. It reports whether the
// note changed; core.ErrKeyNotFound skips the note.
type editFunc func(n *note.Note, t core.MetadataType) (bool, error)

// newEditCmd builds a command that loads notes, applies edit to each of them
// and writes back the ones that changed.
func newEditCmd(a *app, f *editFlags, use, short, defaultType string, edit editFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := core.ParseMetadataType(f.typeName)
			if err != nil {
				return err
			}
			c, err := a.open(cmd, &f.load, args)
			if err != nil {
				return err
			}

			var changed []*note.Note
			for _, n := range c.Notes() {
				ok, err := edit(n, t)
				if errors.Is(err, core.ErrKeyNotFound) {
					a.logger.Debug("key not found, skipping", "path", n.Path)
					continue
				}
				if err != nil {
					return err
				}
				if ok {
					changed = append(changed, n)
				}
			}
			a.logger.Debug("edit applied", "notes", c.Len(), "changed", len(changed))
			return a.commit(cmd, &f.render, changed, a.cfg.Inplace)
		},
	}

	f.load.register(cmd)
	f.render.register(cmd)
	cmd.Flags().StringVarP(&f.typeName, "type", "t", defaultType, "Metadata type: frontmatter, inline or any")
	return cmd
}

type editFlags struct {
	load     loadFlags
	render   renderFlags
	typeName string
	key      string
	values   []string
}

func (f *editFlags) registerKey(cmd *cobra.Command, valuesUsage string) {
	cmd.Flags().StringVarP(&f.key, "key", "k", "", "Metadata key")
	cmd.Flags().StringArrayVar(&f.values, "value", nil, valuesUsage)
	_ = cmd.MarkFlagRequired("key")
}

func newAddCmd(a *app) *cobra.Command {
	f := &editFlags{}
	cmd := newEditCmd(a, f, "add [paths...]", "Add values to a metadata key", "inline",
		func(n *note.Note, t core.MetadataType) (bool, error) {
			before, existed := n.Metadata.Get(f.key, t)
			if err := n.Metadata.Add(f.key, f.values, t); err != nil {
				return false, err
			}
			after, _ := n.Metadata.Get(f.key, t)
			return !existed || len(after.Values) != len(before.Values), nil
		})
	f.registerKey(cmd, "Value to add (repeatable)")
	return cmd
}

func newSetCmd(a *app) *cobra.Command {
	f := &editFlags{}
	cmd := newEditCmd(a, f, "set [paths...]", "Replace the values of a metadata key", "inline",
		func(n *note.Note, t core.MetadataType) (bool, error) {
			return true, n.Metadata.Set(f.key, f.values, t)
		})
	f.registerKey(cmd, "New value (repeatable, none leaves the key empty)")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	f := &editFlags{}
	cmd := newEditCmd(a, f, "remove [paths...]", "Remove a metadata key or some of its values", "any",
		func(n *note.Note, t core.MetadataType) (bool, error) {
			return n.Metadata.Remove(f.key, f.values, t), nil
		})
	f.registerKey(cmd, "Value to remove (repeatable, none removes the key)")
	return cmd
}

func newRenameCmd(a *app) *cobra.Command {
	var to string
	f := &editFlags{}
	cmd := newEditCmd(a, f, "rename [paths...]", "Rename a metadata key", "any",
		func(n *note.Note, t core.MetadataType) (bool, error) {
			return true, n.Metadata.Rename(f.key, to, t)
		})
	cmd.Flags().StringVarP(&f.key, "key", "k", "", "Current key")
	cmd.Flags().StringVar(&to, "to", "", "New key")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newMoveCmd(a *app) *cobra.Command {
	var to string
	f := &editFlags{}
	cmd := newEditCmd(a, f, "move [paths...]", "Move a metadata key between frontmatter and inline", "any",
		func(n *note.Note, _ core.MetadataType) (bool, error) {
			target, err := core.ParseMetadataType(to)
			if err != nil {
				return false, err
			}
			return true, n.Metadata.Move(f.key, target)
		})
	cmd.Flags().StringVarP(&f.key, "key", "k", "", "Key to move")
	cmd.Flags().StringVar(&to, "to", "", "Destination: frontmatter or inline")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
