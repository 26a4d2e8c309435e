package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/utkrisht/uki/compiler/internal/term"
	"github.com/utkrisht/uki/compiler/internal/watch"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		watchFlag bool
		module    bool
	)
	cmd := &cobra.Command{
		Use:   "check [--watch] <file>...",
		Short: "Report diagnostics for one or more files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.renderer(cmd)
			errOut := cmd.ErrOrStderr()

			total := 0
			for _, path := range args {
				n, err := a.checkFile(path, module, r, errOut)
				if err != nil {
					return err
				}
				total += n
			}
			term.Wprintf(errOut, "%s\n", term.Plural(total, "error"))

			if watchFlag {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return a.watch(ctx, args, module, r, errOut)
			}
			if total > 0 {
				return errDiagnostics
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "re-check files whenever they are written")
	cmd.Flags().BoolVar(&module, "module", false, "parse as a module (collect import/export only)")
	return cmd
}

// checkFile loads one file, letting the renderer print its diagnostics, and
// returns how many there were.
func (a *app) checkFile(path string, module bool, r *term.Renderer, errOut io.Writer) (int, error) {
	u, err := a.load(path, a.mode(module), r)
	if err != nil {
		return 0, err
	}
	n := u.Diags.Len()
	if n == 0 {
		term.Wprintf(errOut, "%s: ok\n", u.DisplayPath())
	}
	return n, nil
}

// watch re-checks each file after it is written until ctx is cancelled.
func (a *app) watch(ctx context.Context, paths []string, module bool, r *term.Renderer, errOut io.Writer) error {
	abs, err := displayNames(paths)
	if err != nil {
		return err
	}
	var mu sync.Mutex
	w, err := watch.New(func(changed string) {
		mu.Lock()
		defer mu.Unlock()
		path := abs[changed]
		if path == "" {
			path = changed
		}
		a.log.Debug("changed", "file", path)
		n, err := a.checkFile(path, module, r, errOut)
		if err != nil {
			term.Wprintf(errOut, "error: %v\n", err)
			return
		}
		term.Wprintf(errOut, "%s\n", term.Plural(n, "error"))
	})
	if err != nil {
		return err
	}
	defer w.Close()

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			return fmt.Errorf("watch: %w", err)
		}
	}
	term.Wprintf(errOut, "watching %s; press Ctrl-C to stop\n", term.Plural(len(paths), "file"))
	return w.Run(ctx)
}

// displayNames maps the absolute form of each path back to the path as given.
func displayNames(paths []string) (map[string]string, error) {
	names := make(map[string]string, len(paths))
	for _, p := range paths {
		full, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		names[full] = p
	}
	return names, nil
}
