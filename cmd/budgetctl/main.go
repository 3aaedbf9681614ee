// Command budgetctl runs the dashboard aggregations over a JSON snapshot file.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range commands(os.Stdout) {
		commander.Register(c, "aggregations")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
