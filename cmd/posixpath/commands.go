package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/posixshim/pkg/shim"
)

var errUsage = errors.New("invalid arguments")

func translate(rt *shim.Runtime, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	follow := fs.Bool("follow", false, "Follow links")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: translate needs at least one path", errUsage)
	}

	engine, err := rt.Engine()
	if err != nil {
		return err
	}
	for _, p := range fs.Args() {
		native, err := engine.Translate(p, *follow)
		if err != nil {
			return &shim.PathError{Op: "translate", Path: p, Errno: rt.Errno(err), Err: err}
		}
		fmt.Fprintln(stdout, native)
	}
	return nil
}

type locationsView struct {
	Root     string `json:"root"`
	Home     string `json:"home"`
	Data     string `json:"data"`
	Temp     string `json:"temp"`
	User     string `json:"user"`
	CodePage string `json:"code_page"`
	UTF8Mode bool   `json:"utf8_mode"`
}

func locations(rt *shim.Runtime, stdout io.Writer) error {
	engine, err := rt.Engine()
	if err != nil {
		return err
	}
	loc := engine.Locations()
	out, err := sonic.MarshalIndent(locationsView{
		Root:     loc.Root.Native,
		Home:     loc.Home.Native,
		Data:     loc.Data.Native,
		Temp:     loc.Temp.Native,
		User:     loc.User,
		CodePage: loc.CodePage.String(),
		UTF8Mode: engine.UTF8Mode(),
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(out))
	return nil
}

func links(ctx context.Context, rt *shim.Runtime, args []string, stdout io.Writer) error {
	dir := "/"
	switch len(args) {
	case 0:
	case 1:
		dir = args[0]
	default:
		return errUsage
	}

	entries, err := rt.ScanLinks(ctx, dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Err != nil {
			fmt.Fprintf(stdout, "%s: %v\n", e.Path, e.Err)
			continue
		}
		fmt.Fprintf(stdout, "%s -> %s\n", e.Path, e.Target)
	}
	return nil
}

func link(rt *shim.Runtime, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	return rt.Symlink(args[0], args[1])
}

func readlink(rt *shim.Runtime, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return errUsage
	}
	target, err := rt.Readlink(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, target)
	return nil
}
