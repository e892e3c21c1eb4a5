package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ha1tch/codecanvas/internal/ui"
	"github.com/ha1tch/codecanvas/pkg/canvas"
)

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [model]",
		Short: "Show model information",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Nodes:       %d\n", len(m.Nodes))
			fmt.Fprintf(w, "Connections: %d\n", len(m.Connections))
			if b := m.Bounds(); !b.IsEmpty() {
				fmt.Fprintf(w, "Bounds:      (%g, %g) %gx%g\n", b.X, b.Y, b.Width, b.Height)
			}
			fmt.Fprintln(w)

			counts := make(map[string]int)
			for _, n := range m.Nodes {
				counts[n.Type]++
			}
			types := make([]string, 0, len(counts))
			for t := range counts {
				types = append(types, t)
			}
			sort.Strings(types)
			rows := make([][]string, 0, len(types))
			for _, t := range types {
				c := canvas.CategoryColor(t)
				rows = append(rows, []string{t, fmt.Sprint(counts[t]), fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)})
			}
			ui.Table(w, []string{"TYPE", "NODES", "COLOUR"}, rows)

			if d := m.Dangling(); len(d) > 0 {
				fmt.Fprintln(w)
				ui.Warn.Fprintf(w, "%d connection(s) reference missing nodes and are not drawn:\n", len(d))
				for _, c := range d {
					fmt.Fprintf(w, "  %s: %s -> %s\n", c.ID, c.Source, c.Target)
				}
			}
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <model>",
		Short: "Validate a model file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if d := m.Dangling(); len(d) > 0 {
				ui.Warn.Fprintf(w, "%s: %d dangling connection(s)\n", args[0], len(d))
			}
			ui.Good.Fprintf(w, "%s: valid\n", args[0])
			return nil
		},
	}
}
