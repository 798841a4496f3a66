package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/ktbuild/internal/config"
	"git.home.luguber.info/inful/ktbuild/internal/state"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	SkipTests bool `help:"Compile main sources only"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	proj, err := loadProject(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting Kotlin build", "project", proj.Name, "skip_tests", b.SkipTests)

	op := newCompileOperation(cfg, proj, b.SkipTests)
	buildErr := op.Execute(ctx)

	if report := op.Report(); report != nil {
		if store, err := state.NewHistoryStore(stateDir(proj)); err != nil {
			slog.Warn("Could not open build history store", "error", err)
		} else if err := store.Append(report); err != nil {
			slog.Warn("Could not record build history", "error", err)
		}
	}

	if buildErr != nil {
		return buildErr
	}
	slog.Info("Build succeeded", "project", proj.Name)
	return nil
}
