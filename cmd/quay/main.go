package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/five82/quay/internal/app"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	opts, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(out, usage())
		return 0
	}
	if err != nil {
		fmt.Fprintf(errOut, "quay: %v\n", err)
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(errOut, "quay: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string) (app.Options, error) {
	flagSet := flag.NewFlagSet("quay", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var opts app.Options
	flagSet.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default ~/.config/quay/config.toml)")
	flagSet.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/quay/prefs.toml)")
	flagSet.StringVarP(&opts.DataPath, "data", "d", "", "dataset file, JSON with comments")
	flagSet.StringVarP(&opts.Renderer, "renderer", "r", "", "renderer: tea or tview")
	flagSet.IntVar(&opts.PollEvery, "poll", 0, "reload check interval in seconds")
	flagSet.StringVar(&opts.LogFile, "log", "", "write logs to this file")
	flagSet.StringVar(&opts.Locale, "locale", "", "BCP 47 locale for sorting and search")

	if err := flagSet.Parse(args); err != nil {
		return app.Options{}, err
	}
	if flagSet.NArg() > 0 {
		return app.Options{}, fmt.Errorf("unexpected argument %q", flagSet.Arg(0))
	}
	if flagSet.Changed("poll") && opts.PollEvery <= 0 {
		return app.Options{}, fmt.Errorf("--poll must be positive")
	}
	return opts, nil
}

func usage() string {
	return `Usage: quay [flags]

Browse containers, bills and users in a searchable, sortable terminal table.

Flags:
  -c, --config string     config file (default ~/.config/quay/config.toml)
      --prefs string      preferences file (default ~/.config/quay/prefs.toml)
  -d, --data string       dataset file, JSON with comments
  -r, --renderer string   renderer: tea or tview
      --poll int          reload check interval in seconds
      --log string        write logs to this file
      --locale string     BCP 47 locale for sorting and search
  -h, --help              show this help
`
}
