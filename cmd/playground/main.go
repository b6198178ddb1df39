package main

import (
	"context"

	"github.com/alecthomas/kong"
)

type cli struct {
	Serve   serveCmd   `cmd:"" default:"withargs" help:"Run the playground HTTP server."`
	Catalog catalogCmd `cmd:"" help:"Inspect or extend the widget catalog."`
}

type catalogCmd struct {
	List     catalogListCmd     `cmd:"" help:"List widget definitions."`
	Scaffold catalogScaffoldCmd `cmd:"" help:"Add or replace a widget entry in a catalog manifest."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Name("playground"),
		kong.Description("UI automation practice playground."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}
