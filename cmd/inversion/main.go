// Command inversion 统计 1..n 排列的逆序对数量，或以 HTTP 服务的形式提供计数接口。
//
//	inversion count [--strategy tree|fenwick] [FILE]
//	inversion serve [--config configs/config.toml]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/wyfcoding/inversion/algorithm/inversion"
	"github.com/wyfcoding/inversion/app"
	"github.com/wyfcoding/inversion/config"
	"github.com/wyfcoding/inversion/xerrors"

	"github.com/spf13/pflag"
)

// version 在构建时通过 -ldflags "-X main.version=..." 注入。
var version = "dev"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	switch args[0] {
	case "count":
		return runCount(args[1:], stdin, stdout, stderr)
	case "serve":
		return runServe(args[1:], stderr)
	case "version":
		fmt.Fprintln(stdout, version)
		return exitOK
	case "help", "-h", "--help":
		usage(stdout)
		return exitOK
	default:
		fmt.Fprintf(stderr, "inversion: unknown command %q\n", args[0])
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage:
  inversion count [--strategy tree|fenwick] [FILE]   count inversions of a sequence read from FILE or stdin
  inversion serve [--config PATH]                    run the HTTP API
  inversion version                                  print the version
`)
}

func runCount(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("count", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	strategyName := fs.StringP("strategy", "s", string(inversion.StrategyTree), "tree representation: tree or fenwick")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "inversion: count accepts at most one FILE")
		return exitUsage
	}

	strategy, err := inversion.ParseStrategy(*strategyName)
	if err != nil {
		printError(stderr, err)
		return exitUsage
	}

	in := stdin
	if path := fs.Arg(0); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			printError(stderr, err)
			return exitError
		}
		defer f.Close()
		in = f
	}

	seq, err := inversion.ParseSequence(in)
	if err != nil {
		printError(stderr, err)
		return exitError
	}
	n, err := inversion.CountWith(strategy, seq)
	if err != nil {
		printError(stderr, err)
		return exitError
	}
	fmt.Fprintln(stdout, n)
	return exitOK
}

func runServe(args []string, stderr io.Writer) int {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.StringP("config", "c", "", "path to the TOML config file; built-in defaults when empty")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		printError(stderr, err)
		return exitError
	}

	application, err := app.NewBuilder(cfg).WithVersion(version).Build()
	if err != nil {
		printError(stderr, err)
		return exitError
	}
	config.PrintWithMask(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		printError(stderr, err)
		return exitError
	}
	return exitOK
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default()
	}
	cfg := new(config.Config)
	if err := config.Load(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printError(w io.Writer, err error) {
	if xe, ok := xerrors.FromError(err); ok {
		if xe.Detail != "" {
			fmt.Fprintf(w, "inversion: %s (%s)\n", xe.Message, xe.Detail)
			return
		}
		fmt.Fprintf(w, "inversion: %s\n", xe.Message)
		return
	}
	fmt.Fprintf(w, "inversion: %v\n", err)
}
