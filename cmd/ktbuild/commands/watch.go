package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/ktbuild/internal/config"
	"git.home.luguber.info/inful/ktbuild/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	SkipTests bool `help:"Compile main sources only"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	proj, err := loadProject(cfg)
	if err != nil {
		return err
	}

	rebuild := func(ctx context.Context) error {
		return newCompileOperation(cfg, proj, w.SkipTests).Execute(ctx)
	}

	dirs := append(append([]string(nil), cfg.Compiler.MainSourceDirs...), cfg.Compiler.TestSourceDirs...)
	if len(dirs) == 0 {
		dirs = []string{proj.SrcMainDirectory(), proj.SrcTestDirectory()}
	}
	watcher, err := watch.NewWatcher(dirs, rebuild)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Compile once up front so the watcher starts from a known state.
	if err := rebuild(ctx); err != nil {
		return err
	}

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
