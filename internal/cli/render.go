package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/codecanvas/internal/config"
	"github.com/ha1tch/codecanvas/internal/ui"
	"github.com/ha1tch/codecanvas/pkg/canvas"
	"github.com/ha1tch/codecanvas/pkg/render"
)

type renderOptions struct {
	output string
	width  int
	height int
	panX   float64
	panY   float64
	zoom   float64
	fit    bool
	theme  string
	dark   bool
}

func renderCmd() *cobra.Command {
	var o renderOptions
	cmd := &cobra.Command{
		Use:   "render [model]",
		Short: "Render a model to PNG or SVG",
		Long: "Render a model file (.json or .toml) through a viewport to a PNG or SVG image.\n" +
			"Without a model the built-in demo is rendered.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			m, err := loadModel(args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("width") {
				o.width = cfg.Surface.Width
			}
			if !cmd.Flags().Changed("height") {
				o.height = cfg.Surface.Height
			}
			if o.dark, err = themeDark(cfg, o.theme); err != nil {
				return err
			}
			v, err := renderModel(m, o)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			ui.Good.Fprintf(w, "Written: %s\n", o.output)
			ui.Info.Fprintf(w, "Viewport: offset (%g, %g), zoom %.3g\n", v.X(), v.Y(), v.Zoom())
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "canvas.png", "output file (.png or .svg)")
	f.IntVar(&o.width, "width", 800, "surface width in pixels")
	f.IntVar(&o.height, "height", 600, "surface height in pixels")
	f.Float64Var(&o.panX, "pan-x", 0, "screen x offset of the world origin")
	f.Float64Var(&o.panY, "pan-y", 0, "screen y offset of the world origin")
	f.Float64Var(&o.zoom, "zoom", 1, "zoom factor (clamped to 0.01..20)")
	f.BoolVar(&o.fit, "fit", false, "fit the viewport to the model")
	f.StringVar(&o.theme, "theme", "", "background theme (light or dark)")
	return cmd
}

// renderModel mounts a controller on an off-screen surface, applies the
// requested viewport and writes the result. It returns the viewport used.
func renderModel(m canvas.Model, o renderOptions) (canvas.Viewport, error) {
	opts := render.RasterOptions{Width: o.width, Height: o.height, Background: canvas.ColorLight}
	if o.dark {
		opts.Background = canvas.ColorDark
	}

	ctrl := canvas.NewController(nil)
	ctrl.SetModel(m)

	var write func(*os.File) error
	var host canvas.Host
	switch ext := strings.ToLower(filepath.Ext(o.output)); ext {
	case ".png":
		h := render.NewRasterHost(opts)
		host = h
		write = func(f *os.File) error { return h.Surface.WritePNG(f) }
	case ".svg":
		h := render.NewSVGHost(opts)
		host = h
		write = func(f *os.File) error {
			_, err := h.Surface.WriteTo(f)
			return err
		}
	default:
		return canvas.Viewport{}, fmt.Errorf("unknown output format %q", ext)
	}

	if err := ctrl.Mount(host); err != nil {
		return canvas.Viewport{}, err
	}
	defer ctrl.Close()

	if o.fit {
		ctrl.FitToContent()
	} else {
		ctrl.SetViewport(canvas.ViewportAt(o.panX, o.panY, o.zoom))
	}
	if err := ctrl.Err(); err != nil {
		return canvas.Viewport{}, err
	}

	f, err := os.Create(o.output)
	if err != nil {
		return canvas.Viewport{}, err
	}
	if err := write(f); err != nil {
		f.Close()
		return canvas.Viewport{}, err
	}
	return ctrl.Viewport(), f.Close()
}

// themeDark reports whether to use the dark background. A non-empty flag
// overrides the config file.
func themeDark(cfg *config.Config, flag string) (bool, error) {
	switch strings.ToLower(flag) {
	case "":
		return cfg.Dark(), nil
	case config.ThemeLight:
		return false, nil
	case config.ThemeDark:
		return true, nil
	default:
		return false, fmt.Errorf("unknown theme %q (want %s or %s)", flag, config.ThemeLight, config.ThemeDark)
	}
}
