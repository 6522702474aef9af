package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemeta/internal/config"
)

// errNoMatch makes the process exit with status 1 without printing an error.
var errNoMatch = errors.New("no match")

// app carries the state shared by every subcommand.
type app struct {
	verbose    bool
	configPath string

	cfg    config.Config
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, cfg: config.Default()}

	cmd := &cobra.Command{
		Use:   "notemeta",
		Short: "Query and edit the metadata of Markdown notes",
		Long: `notemeta reads YAML frontmatter and inline "key:: value" metadata from
Markdown notes, and writes changes back without touching the rest of the text.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}

			opts := &slog.HandlerOptions{
				Level: level,
			}
			a.logger = slog.New(slog.NewTextHandler(a.errOut, opts))
			slog.SetDefault(a.logger)

			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			cfg, err := config.Resolve(a.configPath, wd)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger.Debug("config resolved", "path", cfg.Path, "placement", cfg.Placement, "include", cfg.Include)
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: "+config.FileName+" found upwards, or $"+config.EnvVar+")")

	cmd.AddCommand(
		newShowCmd(a),
		newHasCmd(a),
		newListCmd(a),
		newAddCmd(a),
		newSetCmd(a),
		newRemoveCmd(a),
		newRenameCmd(a),
		newMoveCmd(a),
		newConsolidateCmd(a),
		newSubCmd(a),
		newWatchCmd(a),
		newVersionCmd(a),
	)
	return cmd
}

// Execute runs the root command with the process streams and exits on error.
// This is called by main.main().
func Execute() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errNoMatch) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
