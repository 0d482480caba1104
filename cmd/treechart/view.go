package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/treechart"
	"github.com/phanxgames/treechart/stage"
	"github.com/spf13/cobra"
)

var (
	viewWatch       bool
	viewFPS         bool
	viewCollapse    []string
	viewScript      string
	viewScreenshots string
	viewDeadZone    float64
)

func init() {
	cmd := newViewCmd()
	cmd.Flags().BoolVarP(&viewWatch, "watch", "w", false, "Re-render when the state file changes")
	cmd.Flags().BoolVar(&viewFPS, "fps", false, "Show FPS and TPS")
	cmd.Flags().StringSliceVar(&viewCollapse, "collapse", nil, "Paths of nodes to start collapsed")
	cmd.Flags().StringVar(&viewScript, "script", "", "Replay a JSON input script, then close the window")
	cmd.Flags().StringVar(&viewScreenshots, "screenshots", stage.DefaultScreenshotDir, "Directory for script screenshots")
	cmd.Flags().Float64Var(&viewDeadZone, "drag-dead-zone", 0, "Pixels a press may move and still count as a click (0 keeps the default)")
	rootCmd.AddCommand(cmd)
}

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [state]",
		Short: "Open the chart in a window",
		Long: `The view command opens an interactive chart. Click a node to collapse or
expand it.

Example:
  treechart view store.json
  treechart view store.yaml --watch --sorted
  treechart view --config chart.yaml
  treechart view store.json --script clicks.json --screenshots out/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args)
		},
	}
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	state, err := loadState(cfg, args)
	if err != nil {
		return err
	}

	scene := stage.NewScene()
	scene.SetDebugMode(cfg.Debug)
	chart := treechart.New(cfg, scene)
	chart.RenderChart(state)
	if err := collapsePaths(chart, viewCollapse); err != nil {
		return err
	}

	title := "treechart"
	if len(args) > 0 {
		title = "treechart: " + args[0]
	}

	var script *stage.Script
	if viewScript != "" {
		data, err := os.ReadFile(viewScript)
		if err != nil {
			return errors.Wrap(err, "read script")
		}
		if script, err = stage.LoadScript(data); err != nil {
			return err
		}
		scene.ScreenshotDir = viewScreenshots
		scene.SetScript(script)
	}

	var updates <-chan treechart.StateUpdate
	if viewWatch {
		if len(args) == 0 {
			return errors.New("--watch needs a state file")
		}
		w, err := treechart.NewStateWatcher(args[0])
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			w.Stop()
			return err
		}
		defer w.Stop()
		updates = w.Updates()
	}

	log := cfg.Logger
	if cfg.Debug {
		scene.OnClick(func(ctx stage.ClickContext) {
			log.Infof("click node %d at (%.0f, %.0f)", ctx.ChartID, ctx.GlobalX, ctx.GlobalY)
		})
	}
	scene.SetUpdateFunc(func() error {
		select {
		case u, ok := <-updates:
			switch {
			case !ok:
				updates = nil
			case u.Err != nil:
				log.Errorf("%v", u.Err)
			default:
				chart.RenderChart(u.State)
			}
		default:
		}
		if script != nil && script.Done() && !scene.ScreenshotPending() {
			if err := script.Err(); err != nil {
				return err
			}
			return ebiten.Termination
		}
		return nil
	})

	return stage.Run(scene, stage.RunConfig{
		Title:        title,
		ShowFPS:      viewFPS,
		DragDeadZone: viewDeadZone,
	})
}
