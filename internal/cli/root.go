// Package cli implements the codecanvas command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/codecanvas/internal/config"
	"github.com/ha1tch/codecanvas/internal/ui"
	"github.com/ha1tch/codecanvas/pkg/canvas"
	"github.com/ha1tch/codecanvas/pkg/modelfile"
)

var version = "0.1.0"

var configPath string

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "codecanvas",
		Short: "Explore code graphs on an infinite canvas",
		Long: ui.Brand.Sprint("codecanvas") + ": explore code graphs on an infinite canvas\n" +
			ui.Subtle.Sprint("Render node/connection models to PNG or SVG, or pan and zoom them in the terminal"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("codecanvas {{ .Version }}\n")
	root.PersistentFlags().StringVar(&configPath, "config", config.Path(), "config file")

	root.AddCommand(
		renderCmd(),
		viewCmd(),
		infoCmd(),
		validateCmd(),
		dotCmd(),
		convertCmd(),
		demoCmd(),
		configCmd(),
	)
	return root
}

// Execute runs the root command and prints any error.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		ui.Errorf(os.Stderr, "%v", err)
		return err
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// loadModel reads the model named by args, or the demo model when args is
// empty.
func loadModel(args []string) (canvas.Model, error) {
	if len(args) == 0 {
		return modelfile.Demo(), nil
	}
	return modelfile.Load(args[0])
}
