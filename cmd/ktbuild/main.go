package main

import (
	"git.home.luguber.info/inful/ktbuild/cmd/ktbuild/commands"
	"github.com/alecthomas/kong"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli := commands.CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("ktbuild"),
		kong.Description("Build tool for Kotlin source trees: compiles with kotlinc and generates API documentation with Dokka."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	err := ctx.Run(&commands.Global{})
	ctx.FatalIfErrorf(err)
}
