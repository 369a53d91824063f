// scanline - software 3D renderer
// Renders OBJ and glTF models, or a built-in cube, in the terminal, in a
// desktop window, or to an image file.
//
// Controls (terminal and window):
//
//	1-6         - Render mode (wire, wire-vertex, fill, fill-wire, textured, textured-wire)
//	C / B       - Toggle backface culling
//	W/S         - Move forward/back
//	A/D         - Strafe left/right
//	E/Q         - Move up/down
//	Arrows      - Look around
//	Space       - Random spin impulse
//	R           - Reset camera and spin
//	?           - Toggle HUD (terminal only)
//	Esc         - Quit
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/pipeline"
)

var version = "dev"

func main() {
	err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	)
	if err != nil {
		os.Exit(1)
	}
}

// app carries state shared by the subcommands.
type app struct {
	configPath string
	debug      bool
	flags      config.Flags
	cfg        config.Config
	logFile    *os.File
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "scanline [model.obj|model.glb]",
		Short: "Software 3D renderer for the terminal",
		Long: "scanline clips, culls, shades and scan-converts triangle meshes on the CPU.\n" +
			"Without a model it shows a spinning cube.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runView(cmd.Context(), &a.cfg)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "JSON config file")
	pf.BoolVar(&a.debug, "debug", false, "log per-frame statistics")
	pf.StringVar(&a.flags.LogFile, "log-file", "", "write logs to this file")
	pf.StringVarP(&a.flags.RenderMode, "mode", "m", "", "render mode: wire, wire-vertex, fill, fill-wire, textured, textured-wire")
	pf.StringVar(&a.flags.CullMode, "cull", "", "cull mode: backface or none")
	pf.StringVar(&a.flags.Texture, "texture", "", "texture image (PNG/JPG/TGA)")
	pf.StringVar(&a.flags.Background, "bg", "", "background color (R,G,B)")
	pf.Float64Var(&a.flags.FOVDegrees, "fov", 0, "vertical field of view in degrees")
	pf.IntVar(&a.flags.FPS, "fps", 0, "target frames per second")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		quiet := cmd == root || cmd.Name() == "view"
		return a.setup(args, quiet)
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "view [model]",
			Short: "Render in the terminal with half-block cells",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runView(cmd.Context(), &a.cfg)
			},
		},
		newWindowCmd(a),
		newSnapshotCmd(a),
	)

	return root
}

func newWindowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window [model]",
		Short: "Render in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(*cobra.Command, []string) error {
			return runWindow(&a.cfg)
		},
	}
	cmd.Flags().IntVar(&a.flags.Width, "width", 0, "window width in pixels")
	cmd.Flags().IntVar(&a.flags.Height, "height", 0, "window height in pixels")
	return cmd
}

func newSnapshotCmd(a *app) *cobra.Command {
	var (
		out string
		at  float64
	)
	cmd := &cobra.Command{
		Use:   "snapshot [model]",
		Short: "Render one frame to a PNG or WebP file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(*cobra.Command, []string) error {
			return runSnapshot(&a.cfg, out, at)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "scanline.png", "output file (.png or .webp)")
	cmd.Flags().Float64Var(&at, "time", 0, "seconds of spin to apply before rendering")
	cmd.Flags().IntVar(&a.flags.Width, "width", 0, "image width in pixels")
	cmd.Flags().IntVar(&a.flags.Height, "height", 0, "image height in pixels")
	cmd.Flags().IntVar(&a.flags.Supersample, "supersample", 0, "render at N times the size and downscale")
	return cmd
}

// setup loads and resolves the config and installs the logger. Quiet
// commands own the terminal, so without a log file they log nowhere.
func (a *app) setup(args []string, quiet bool) error {
	if len(args) > 0 {
		a.flags.Mesh = args[0]
	}

	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	a.cfg.Resolve(a.flags)
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	if quiet {
		w = io.Discard
	}
	if a.cfg.LogFile != "" {
		f, err := os.OpenFile(a.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		w = f
	}

	level := slog.LevelInfo
	if a.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	pipeline.SetLogger(logger)
	return nil
}

func (a *app) close() error {
	if a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	return err
}
