package main

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"github.com/phanxgames/treechart"
	"github.com/spf13/cobra"
)

var layoutCollapse []string

func init() {
	cmd := newLayoutCmd()
	cmd.Flags().StringSliceVar(&layoutCollapse, "collapse", nil, "Paths of nodes to collapse")
	rootCmd.AddCommand(cmd)
}

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout [state]",
		Short: "Print node positions as JSON",
		Long: `The layout command prints the position of every visible node, in drawing
coordinates relative to the chart origin.

Example:
  treechart layout store.json
  treechart layout store.json --sorted --collapse state/todos`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd, args, cmd.OutOrStdout())
		},
	}
}

type layoutNode struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Depth    int     `json:"depth"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Shape    string  `json:"shape"`
	ParentID int     `json:"parentId,omitempty"`
}

type layoutOutput struct {
	Width         float64      `json:"width"`
	Height        float64      `json:"height"`
	TallestBranch int          `json:"tallestBranch"`
	Nodes         []layoutNode `json:"nodes"`
}

func runLayout(cmd *cobra.Command, args []string, w io.Writer) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	state, err := loadState(cfg, args)
	if err != nil {
		return err
	}

	chart := treechart.New(cfg, &treechart.Recorder{})
	chart.RenderChart(state)
	if err := collapsePaths(chart, layoutCollapse); err != nil {
		return err
	}

	l := chart.Layout()
	parents := make(map[int]int, len(l.Links))
	for _, link := range l.Links {
		parents[link.Target.ID] = link.Source.ID
	}
	canvas := chart.Canvas()
	out := layoutOutput{
		Width:         canvas.Width,
		Height:        canvas.Height,
		TallestBranch: l.TallestBranch,
		Nodes:         make([]layoutNode, 0, len(l.Nodes)),
	}
	for _, n := range l.Nodes {
		p := treechart.DrawPoint(n.X, n.Y)
		out.Nodes = append(out.Nodes, layoutNode{
			ID:       n.ID,
			Name:     n.Name,
			Path:     n.Path,
			Depth:    n.Depth,
			X:        p.X,
			Y:        p.Y,
			Shape:    n.Shape().String(),
			ParentID: parents[n.ID],
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode layout")
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return errors.Wrap(err, "write layout")
}
