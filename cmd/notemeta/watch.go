package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/notemeta/pkg/adapters/fs"
	"github.com/aretw0/notemeta/pkg/adapters/lifecycle"
	"github.com/aretw0/notemeta/pkg/core"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		load      loadFlags
		debounce  time.Duration
		showState bool
		on        []string
	)

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Follow metadata changes of notes",
		Long: `Load notes, then reload them whenever their files change and print one
line per change with the number of metadata entries. Stops on interrupt.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var types []core.EventType
			for _, name := range on {
				et, err := core.ParseEventType(name)
				if err != nil {
					return err
				}
				types = append(types, et)
			}

			c, err := a.open(cmd, &load, args)
			if err != nil {
				return err
			}

			d := a.cfg.Debounce
			if cmd.Flags().Changed("debounce") {
				d = debounce
			}
			w := c.NewWatcher(fs.WatchConfig{
				Debounce: d,
				ErrorHandler: func(err error) {
					a.logger.Error("watcher failed", "error", err)
				},
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			events, err := w.Watch(ctx)
			if err != nil {
				return err
			}
			src := lifecycle.NewSource(events, types...)
			if err := src.Start(ctx); err != nil {
				return err
			}
			a.logger.Info("watching", "roots", c.Roots(), "notes", c.Len())

			for e := range src.Events() {
				ev, ok := e.(core.Event)
				if !ok {
					continue
				}
				notes, err := c.Refresh(ev)
				if err != nil {
					a.logger.Warn("refresh failed", "path", ev.Path, "error", err)
					continue
				}
				if len(notes) == 0 {
					fmt.Fprintln(a.out, ev.String())
				}
				for _, n := range notes {
					fmt.Fprintf(a.out, "%s (%d entries)\n", ev.String(), n.Metadata.Len(core.Any))
				}
			}

			if showState {
				return printStates(a, map[string]introspection.Introspectable{
					c.ComponentType(): c,
					w.ComponentType(): w,
				})
			}
			return nil
		},
	}

	load.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Quiet period before a change is reported (default from config)")
	cmd.Flags().BoolVar(&showState, "state", false, "Print collection and watcher state as JSON on exit")
	cmd.Flags().StringSliceVar(&on, "on", nil, "Only report these changes: create, modify, delete (default all)")
	return cmd
}

func printStates(a *app, components map[string]introspection.Introspectable) error {
	states := make(map[string]any, len(components))
	for name, c := range components {
		states[name] = c.State()
	}
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(states)
}
