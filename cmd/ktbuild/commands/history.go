package commands

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/ktbuild/internal/config"
	"git.home.luguber.info/inful/ktbuild/internal/state"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" help:"Show at most this many entries" default:"10"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	proj, err := loadProject(cfg)
	if err != nil {
		return err
	}

	store, err := state.NewHistoryStore(stateDir(proj))
	if err != nil {
		return err
	}
	reports, err := store.List()
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Println("No builds recorded yet")
		return nil
	}

	if h.Limit > 0 && len(reports) > h.Limit {
		reports = reports[len(reports)-h.Limit:]
	}
	// Newest last in storage; print newest first.
	for i := len(reports) - 1; i >= 0; i-- {
		r := reports[i]
		line := fmt.Sprintf("%s  %-7s  %s  (%s)",
			r.Started.Format("2006-01-02 15:04:05"), r.Outcome, r.Project, r.Duration.Round(time.Millisecond))
		if r.Error != "" {
			line += "  " + r.Error
		}
		fmt.Println(line)
	}
	return nil
}
