package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/utkrisht/uki/compiler/internal/build"
	"github.com/utkrisht/uki/compiler/internal/config"
	"github.com/utkrisht/uki/compiler/internal/parser"
	"github.com/utkrisht/uki/compiler/internal/term"
)

// errDiagnostics makes the process exit 1 once the diagnostics have
// already been printed.
var errDiagnostics = errors.New("diagnostics reported")

// app is the state shared by every subcommand of one invocation.
type app struct {
	cfgFile string
	color   string
	verbose bool

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "uki",
		Short: "Front end for the Utkrisht scripting language",
		Long: `uki tokenizes and parses Utkrisht source files and reports
indentation, lexical and syntax errors.

Configuration is read from --config, $UKI_CONFIG, or the nearest
uki.toml / uki.yaml above the working directory.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: nearest uki.toml or uki.yaml)")
	root.PersistentFlags().StringVar(&a.color, "color", "", "colorize diagnostics: auto, always or never")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(
		newLexCmd(a),
		newParseCmd(a),
		newCheckCmd(a),
		newReplCmd(a),
		newExplainCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup resolves the configuration and the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(a.cfgFile, ".", a.applyFlags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	var h slog.Handler
	if cfg.Log.Format == "json" {
		h = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	} else {
		h = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	}
	a.log = slog.New(h).With("run", uuid.NewString())
	a.log.Debug("config", "path", cfg.Path(), "mode", cfg.Parse.Mode, "color", cfg.Diagnostics.Color)
	return nil
}

// applyFlags lets --color and --verbose win over the file and environment.
func (a *app) applyFlags(cfg *config.Config) {
	if a.color != "" {
		cfg.Diagnostics.Color = a.color
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
}

func (a *app) mode(module bool) parser.Mode {
	if module || a.cfg.ModuleMode() {
		return parser.ModeModule
	}
	return parser.ModeProgram
}

func (a *app) renderer(cmd *cobra.Command) *term.Renderer {
	return term.NewRenderer(cmd.ErrOrStderr(), a.cfg.Diagnostics.Color)
}

// load reads path and parses it, mirroring diagnostics to r as they are
// reported.
func (a *app) load(path string, mode parser.Mode, r *term.Renderer) (*build.Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	src := string(data)
	r.SetSource(path, src, a.cfg.Diagnostics.Context)
	return build.LoadSource(path, src, build.Options{
		Mode:    mode,
		Emit:    true,
		Printer: r,
		Logger:  a.log,
	})
}
