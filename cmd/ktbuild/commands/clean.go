package commands

import (
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/ktbuild/internal/config"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct{}

func (c *CleanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	proj, err := loadProject(cfg)
	if err != nil {
		return err
	}

	dir := proj.BuildDirectory()
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove build directory: %w", err)
	}
	slog.Info("Removed build output", "dir", dir)
	return nil
}
