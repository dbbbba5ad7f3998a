// Command rmboard converts reMarkable .lines notebooks to PDF and PNG, and
// previews them in a window or on the local network.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

const version = "0.4.0"

// CLI defines the command-line interface for rmboard.
var CLI struct {
	Globals

	Convert ConvertCmd `cmd:"" help:"Render a notebook to a PDF file"`
	PNG     PNGCmd     `cmd:"" name:"png" help:"Render each page of a notebook to a PNG file"`
	Inspect InspectCmd `cmd:"" help:"Decode a notebook and print its structure"`
	View    ViewCmd    `cmd:"" help:"Open a notebook in a desktop window"`
	Serve   ServeCmd   `cmd:"" help:"Stream a notebook to browsers on the local network"`
	Browse  BrowseCmd  `cmd:"" help:"List preview servers on the local network"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

func main() {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx := kong.Parse(&CLI,
		kong.Name("rmboard"),
		kong.Description("reMarkable notebook converter and previewer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	ctx.BindTo(runCtx, (*context.Context)(nil))
	err := ctx.Run(&CLI.Globals)
	ctx.FatalIfErrorf(err)
}
