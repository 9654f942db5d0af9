package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/idilsaglam/clarolist/internal/cli"
	"github.com/idilsaglam/clarolist/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := &cli.RootOptions{}
	root := cli.NewRootCommand(opts)
	err := root.ExecuteContext(ctx)
	opts.Close()
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		if cli.ExitCode(err) == 2 {
			ui.Hint(os.Stderr, "run `claro folders` or `claro ls` to see valid folders and tasks")
		}
	}
	os.Exit(cli.ExitCode(err))
}
