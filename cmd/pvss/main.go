// Command pvss runs a publicly verifiable secret sharing ceremony over
// JSON files.
//
// Usage:
//
//	pvss keygen --threshold 2 --participants 5 --out keys/
//	pvss deal --keys keys/keys.json --participant keys/participant-1.json --out t1.json
//	pvss verify --keys keys/keys.json t1.json t2.json
//	pvss aggregate --keys keys/keys.json --out agg.json t1.json t2.json
//	pvss decrypt --keys keys/keys.json --participant keys/participant-3.json --transcript agg.json
//	pvss reconstruct --keys keys/keys.json share-1.json share-3.json share-5.json
//
// Scheme settings come from flags or a YAML file passed with --config;
// every command of a ceremony must use the same settings.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/f3rmion/pvss/pvss"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one subcommand and returns the process exit code: 0 on
// success, 1 when the command fails and 2 on usage errors.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}

	fs := newFlagSet(cmd.name, stderr)
	cmd.flags(fs)
	v, err := loadConfig(fs, args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	logger, closeLog, err := newLogger(v, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	defer closeLog()

	reg := prometheus.NewRegistry()
	metrics, err := pvss.NewMetrics(reg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	e := &env{
		v:       v,
		logger:  logger.With(zap.String("command", cmd.name)),
		metrics: metrics,
		stdout:  stdout,
	}

	err = cmd.run(ctx, e, fs)
	if path := v.GetString("metrics.file"); path != "" {
		if werr := prometheus.WriteToTextfile(path, reg); werr != nil {
			e.logger.Error("writing metrics", zap.Error(werr))
		}
	}
	if err != nil {
		e.logger.Error("command failed", zap.Error(err))
		fmt.Fprintf(stderr, "%s: %v\n", cmd.name, err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: pvss <command> [flags] [files]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-12s %s\n", c.name, c.usage)
	}
}
