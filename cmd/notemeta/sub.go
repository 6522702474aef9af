package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSubCmd(a *app) *cobra.Command {
	var (
		load        loadFlags
		pattern     string
		replacement string
		isRegex     bool
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "sub [paths...]",
		Short: "Replace text in notes",
		Long: `Replace every occurrence of --pattern with --replace in each note. The
pattern is literal unless --regex is set, in which case $1 style references
may be used in the replacement.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open(cmd, &load, args)
			if err != nil {
				return err
			}

			for _, n := range c.Notes() {
				before := n.Content
				if err := n.Substitute(pattern, replacement, isRegex); err != nil {
					return err
				}
				if n.Content == before {
					continue
				}
				if dryRun {
					fmt.Fprintf(a.out, "==> %s <==\n%s", n.Path, n.Content)
					continue
				}
				if err := n.Write(); err != nil {
					return err
				}
				a.logger.Info("note updated", "path", n.Path)
			}
			return nil
		},
	}

	load.register(cmd)
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "Text or regular expression to replace")
	cmd.Flags().StringVar(&replacement, "replace", "", "Replacement text")
	cmd.Flags().BoolVar(&isRegex, "regex", false, "Treat --pattern as a regular expression")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Print the result instead of writing files")
	_ = cmd.MarkFlagRequired("pattern")
	return cmd
}
