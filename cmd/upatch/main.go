package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mfriedel/upatch/cli"
	"github.com/mfriedel/upatch/upatch"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	app := upatch.New(cfg)
	summary, err := app.Execute()
	if err != nil {
		var detailed *upatch.DetailedError
		if errors.As(err, &detailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n%s", detailed.Err, detailed.Stack)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(2)
	}

	if summary.FailedFiles() > 0 {
		os.Exit(1)
	}
}
