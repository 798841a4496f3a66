package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/ktbuild/internal/config"
	"git.home.luguber.info/inful/ktbuild/internal/dokka"
	"git.home.luguber.info/inful/ktbuild/internal/gitinfo"
)

// DocCmd implements the 'doc' command.
type DocCmd struct {
	Format string `short:"f" help:"Output format (html, javadoc, gfm, jekyll)"`
	Output string `short:"o" help:"Output directory for generated documentation"`
}

func (d *DocCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	proj, err := loadProject(cfg)
	if err != nil {
		return err
	}

	op := dokka.NewOperation().FromProject(proj)

	dc := cfg.Dokka
	if dc.LibsDir != "" {
		op.LibsDirectory(dc.LibsDir)
	}

	formatName := dc.Format
	if d.Format != "" {
		formatName = d.Format
	}
	format, ok := dokka.ParseFormat(formatName)
	if !ok {
		return fmt.Errorf("unknown documentation format: %s", formatName)
	}
	op.OutputFormat(format)

	if d.Output != "" {
		op.OutputDir(d.Output)
	} else if dc.OutputDir != "" {
		op.OutputDir(dc.OutputDir)
	}
	op.FailOnWarning(dc.FailOnWarning)
	op.OfflineMode(dc.OfflineMode)
	if len(dc.Includes) > 0 {
		op.Includes(dc.Includes...)
	}
	for url, packageList := range dc.Links {
		op.GlobalLink(url, packageList)
	}

	configureSourceSet(op, cfg, proj.SrcMainDirectory())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("Generating API documentation", "project", proj.Name, "format", string(format))
	if err := op.Execute(ctx); err != nil {
		return err
	}
	slog.Info("Documentation generated", "project", proj.Name)
	return nil
}

// configureSourceSet applies visibilities and the source link to the default
// source set. A missing link URL is derived from the local git repository;
// projects without a repository simply get no source links.
func configureSourceSet(op *dokka.Operation, cfg *config.Config, srcDir string) {
	ss := op.MainSourceSet()
	if ss == nil {
		return
	}
	for _, v := range cfg.Dokka.Visibilities {
		ss.DocumentedVisibilities(dokka.Visibility(v))
	}

	link := cfg.Dokka.SourceLink
	if link == nil {
		return
	}
	path := link.Path
	if path == "" {
		path = srcDir
	}
	url := link.URL
	if url == "" {
		info, err := gitinfo.Resolve(path)
		if err != nil {
			slog.Warn("Could not derive source link from git repository", "error", err)
			return
		}
		url = info.BrowseURL()
	}
	if link.Suffix != "" {
		url += link.Suffix
	}
	ss.SrcLink(path, url)
}
