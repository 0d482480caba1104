package main

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/phanxgames/treechart"
	"github.com/spf13/cobra"
)

var (
	svgOutput   string
	svgCollapse []string
)

func init() {
	cmd := newSVGCmd()
	cmd.Flags().StringVarP(&svgOutput, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringSliceVar(&svgCollapse, "collapse", nil, "Paths of nodes to collapse")
	rootCmd.AddCommand(cmd)
}

func newSVGCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "svg [state]",
		Short: "Write the chart as an SVG document",
		Long: `The svg command renders the fully settled chart as a static SVG.

Example:
  treechart svg store.json -o store.svg
  treechart svg store.yaml --collapse state/todos --size 800`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var w io.Writer = cmd.OutOrStdout()
			if svgOutput != "" {
				f, err := os.Create(svgOutput)
				if err != nil {
					return errors.Wrapf(err, "create %s", svgOutput)
				}
				defer f.Close()
				w = f
			}
			return runSVG(cmd, args, w)
		},
	}
}

func runSVG(cmd *cobra.Command, args []string, w io.Writer) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	state, err := loadState(cfg, args)
	if err != nil {
		return err
	}

	surface := treechart.NewSVGSurface()
	chart := treechart.New(cfg, surface)
	chart.RenderChart(state)
	if err := collapsePaths(chart, svgCollapse); err != nil {
		return err
	}

	_, err = surface.WriteTo(w)
	return err
}
