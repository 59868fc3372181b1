package main

import (
	"fmt"
	"os"

	"github.com/valleyjudge/offer-comparison/internal/cli"
)

func main() {
	if err := cli.Execute(nil, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
