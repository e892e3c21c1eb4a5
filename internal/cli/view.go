package cli

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/ha1tch/codecanvas/internal/config"
	"github.com/ha1tch/codecanvas/pkg/canvas"
	"github.com/ha1tch/codecanvas/pkg/termview"
)

func viewCmd() *cobra.Command {
	var theme string
	cmd := &cobra.Command{
		Use:   "view [model]",
		Short: "Explore a model in the terminal",
		Long: "Open a model in an interactive terminal canvas.\n\n" +
			"  alt+drag or middle-drag  pan\n" +
			"  wheel, + and -           zoom at the pointer\n" +
			"  double-click background  reset the view\n" +
			"  click a node             show its details\n" +
			"  0 reset, f fit, q quit",
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
			opts, err := viewOptions(cfg)
			if err != nil {
				return err
			}
			if opts.Dark, err = themeDark(cfg, theme); err != nil {
				return err
			}
			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("%w: %w", canvas.ErrSurfaceUnavailable, err)
			}

			view := termview.New(screen, opts)
			ctrl := canvas.NewController(func(n canvas.Node) {
				view.SetStatus(nodeStatus(m, n))
			})
			ctrl.SetModel(m)
			view.SetStatus(fmt.Sprintf("%d nodes, %d connections", len(m.Nodes), len(m.Connections)))
			return view.Run(ctrl)
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", "background theme (light or dark)")
	return cmd
}

// nodeStatus describes a clicked node and its neighbours by name.
func nodeStatus(m canvas.Model, n canvas.Node) string {
	var out, in []string
	for _, c := range m.Connections {
		if c.Source == n.ID {
			if t, ok := m.Lookup(c.Target); ok {
				out = append(out, t.Name)
			}
		}
		if c.Target == n.ID {
			if s, ok := m.Lookup(c.Source); ok {
				in = append(in, s.Name)
			}
		}
	}
	msg := fmt.Sprintf("%s (%s) id=%s", n.Name, n.Type, n.ID)
	if len(out) > 0 {
		msg += " → " + strings.Join(out, ", ")
	}
	if len(in) > 0 {
		msg += " ← " + strings.Join(in, ", ")
	}
	return msg
}

func viewOptions(cfg *config.Config) (termview.Options, error) {
	mod, err := parseModifier(cfg.Terminal.PanModifier)
	if err != nil {
		return termview.Options{}, err
	}
	return termview.Options{
		CellWidth:   cfg.Terminal.CellWidth,
		CellHeight:  cfg.Terminal.CellHeight,
		DoubleClick: cfg.DoubleClick(),
		PanModifier: mod,
	}, nil
}

func parseModifier(s string) (tcell.ModMask, error) {
	switch strings.ToLower(s) {
	case "alt", "":
		return tcell.ModAlt, nil
	case "ctrl":
		return tcell.ModCtrl, nil
	case "shift":
		return tcell.ModShift, nil
	case "none":
		return tcell.ModNone, nil
	default:
		return 0, fmt.Errorf("unknown pan modifier %q", s)
	}
}
