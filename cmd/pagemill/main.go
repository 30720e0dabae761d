package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pagemill/cmd/pagemill/commands"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("pagemill"),
		kong.Description("Markdown static site builder"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	err := ctx.Run(&commands.Global{}, &cli)
	ctx.FatalIfErrorf(err)
}
