package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/projectdeck/internal/monitor"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live terminal view of projects",
		Long: `Open a live terminal view of the project list. The list refreshes every
watch.interval.

Keys:
  r refresh  n new  e edit  d delete  j/k move  enter submit  esc close  q quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := ctxOf(cmd)
			a, err := newApp(ctx, appOptions{quiet: true})
			if err != nil {
				return err
			}
			defer a.Close()

			feed := monitor.NewFeed()
			a.renderer.Attach(feed)

			model := monitor.NewModel(a.ctrl, a.notifier, feed, a.client.BaseURL(), a.cfg.Watch.Interval.Duration())
			return monitor.Run(model, tea.WithAltScreen(), tea.WithContext(ctx))
		},
	}
}
