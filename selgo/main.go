package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum-optimism/zeroselector/selgo/cmd"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "zeroselector"
	app.Usage = "EVM function selector optimizer"
	app.Description = "Find alternate function names whose 4-byte selector has more zero bytes, to lower dispatch gas cost"
	app.Commands = []*cli.Command{
		cmd.SearchCommand,
		cmd.ScoreCommand,
	}
	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for {
			<-c
			cancel()
			_, _ = fmt.Fprintln(os.Stderr, "\r\nExiting...")
		}
	}()

	err := app.RunContext(ctx, os.Args)
	os.Exit(exitCode(os.Stderr, err, ctx.Err()))
}

// exitCode reports err on w and maps it to the process exit code.
func exitCode(w io.Writer, err error, ctxErr error) int {
	if err == nil {
		return 0
	}
	if ctxErr != nil && errors.Is(err, ctxErr) {
		_, _ = fmt.Fprintln(w, "search interrupted")
		return 130
	}
	_, _ = fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
