package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/acampagne/todo/internal/cli"
	"github.com/acampagne/todo/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Root flags (apply to every subcommand); config and env supply the
	// defaults, flags override.
	file := flag.String("file", cfg.File, "path to the todo storage file")
	theme := flag.String("theme", cfg.Theme, "color theme: classic, neon or mono")
	noColor := flag.Bool("no-color", !cfg.Color, "disable colored output")
	verbose := flag.Bool("verbose", cfg.Verbose, "enable debug logging")
	groupPending := flag.Bool("group", false, "group output by pending/done")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	os.Exit(cli.Run(args, cli.Options{
		File:    *file,
		Theme:   *theme,
		NoColor: *noColor,
		Verbose: *verbose,
		Group:   *groupPending,
	}))
}
