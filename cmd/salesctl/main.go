// Command salesctl summarizes or exports the sales workbook from the shell.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"sales-dashboard/internal/handlers"
)

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "salesctl",
		Usage:     "summarize and export supermarket sales",
		Version:   handlers.Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			summaryCommand(),
			exportCommand(),
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if exitErr, ok := err.(cli.ExitCoder); ok && exitErr.Error() != "" {
				fmt.Fprintln(c.App.ErrWriter, exitErr.Error())
			}
		},
	}
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
