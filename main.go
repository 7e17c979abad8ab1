package main

import (
	"favgen/cutout"
	"favgen/icons"
	"favgen/parallel"
	"favgen/pipeline"

	"github.com/alecthomas/kong"
)

var cli struct {
	All    pipeline.CLICmd `cmd:"" default:"withargs" help:"Run the full pipeline: cut out the background, then export every icon size"`
	Cutout cutout.CLICmd   `cmd:"" help:"Remove the background from the source image and crop to the subject"`
	Icons  icons.CLICmd    `cmd:"" help:"Export the favicon set and ICO bundle from an already transparent image"`

	Workers int `help:"Number of parallel export workers" default:"1"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("favgen"),
		kong.Description("Turn one generated image into transparent, cropped favicon assets."),
		kong.UsageOnError(),
	)

	pool := parallel.Start(cli.Workers)
	err := kctx.Run(pool.Do, pool.Wait)
	kctx.FatalIfErrorf(err)
}
