package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	app := cli.NewApp(stdout, stderr)
	if err := app.Run(context.Background(), args); err != nil {
		if cli.ExitCode(err) != cli.ExitNoMatches {
			fmt.Fprintln(stderr, err)
		}
		return cli.ExitCode(err)
	}
	return cli.ExitSuccess
}
