package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/codecanvas/internal/ui"
	"github.com/ha1tch/codecanvas/pkg/modelfile"
)

func dotCmd() *cobra.Command {
	var title, output string
	cmd := &cobra.Command{
		Use:   "dot [model]",
		Short: "Generate Graphviz DOT output",
		Long:  "Generate Graphviz DOT with pinned node positions, e.g.\n  codecanvas dot model.json | neato -n -Tpng -o model.png",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(args)
			if err != nil {
				return err
			}
			dot := modelfile.GenerateDOT(m, title)
			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), dot)
				return nil
			}
			if err := os.WriteFile(output, []byte(dot), 0644); err != nil {
				return err
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "Written: %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "graph title")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func convertCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "convert <input> -o <output>",
		Short: "Convert a model between JSON and TOML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := modelfile.Load(args[0])
			if err != nil {
				return err
			}
			if err := modelfile.Save(output, m); err != nil {
				return err
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "Written: %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .toml)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func demoCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write the built-in demo model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := modelfile.Demo()
			if output == "" {
				data, err := modelfile.ToJSON(m, true)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := modelfile.Save(output, m); err != nil {
				return err
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "Written: %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .toml, default stdout)")
	return cmd
}
