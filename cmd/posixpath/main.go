package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/posixshim/internal/errno"
	"github.com/GriffinCanCode/posixshim/internal/infrastructure/config"
	"github.com/GriffinCanCode/posixshim/internal/logging"
	"github.com/GriffinCanCode/posixshim/pkg/shim"
)

const usage = `usage: posixpath [flags] <command> [args]

commands:
  translate [-follow] path...   print the native form of each POSIX path
  locations                     print the bootstrapped directories as JSON
  links [dir]                   list the links below dir (default /)
  ln target link                create a link
  readlink path                 print the target of a link

flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, shim.Options{}))
}

// run executes one command. base supplies the runtime dependencies; empty
// fields are filled from the environment.
func run(args []string, stdout, stderr io.Writer, base shim.Options) int {
	fs := flag.NewFlagSet("posixpath", flag.ContinueOnError)
	fs.SetOutput(stderr)
	org := fs.String("org", "", "Organisation name")
	app := fs.String("app", "", "Application name")
	stats := fs.Bool("stats", false, "Print translation metrics as JSON after the command")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg := base.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(); err != nil {
			fmt.Fprintf(stderr, "posixpath: %v\n", err)
			return 1
		}
	}
	log := base.Logger
	if log == nil {
		var err error
		if log, err = logging.New(logging.FromConfig(cfg.Logging)); err != nil {
			fmt.Fprintf(stderr, "posixpath: %v\n", err)
			return 1
		}
		defer log.Sync()
	}

	opts := base
	opts.Config = cfg
	opts.Logger = log
	opts.UTF8Mode = cfg.Shim.UTF8Mode
	if *org != "" || *app != "" {
		opts.Org, opts.App = *org, *app
	}

	rt := shim.NewRuntime()
	rt.SetPanicFunc(func(code int, msg string) {
		log.Error("unrecoverable error", zap.Int("code", code), zap.String("message", msg))
	})
	if err := rt.Init(opts); err != nil {
		fmt.Fprintf(stderr, "posixpath: %v\n", err)
		return 1
	}
	defer rt.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	var err error
	switch cmd {
	case "translate":
		err = translate(rt, rest, stdout, stderr)
	case "locations":
		err = locations(rt, stdout)
	case "links":
		err = links(ctx, rt, rest, stdout)
	case "ln":
		err = link(rt, rest)
	case "readlink":
		err = readlink(rt, rest, stdout)
	default:
		fmt.Fprintf(stderr, "posixpath: unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "posixpath: %s\n", describe(err))
		if errors.Is(err, errUsage) {
			fs.Usage()
			return 2
		}
		return 1
	}

	if *stats {
		out, err := sonic.MarshalIndent(rt.Metrics().Snapshot(), "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "posixpath: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, string(out))
	}
	return 0
}

// describe appends the errno name to POSIX failures.
func describe(err error) string {
	var pe *shim.PathError
	if errors.As(err, &pe) {
		return fmt.Sprintf("%v (%s)", err, pe.Errno.Name())
	}
	var e errno.Errno
	if errors.As(err, &e) {
		return fmt.Sprintf("%v (%s)", err, e.Name())
	}
	return err.Error()
}
