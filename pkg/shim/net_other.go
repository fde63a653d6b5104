//go:build !windows

package shim

func startNetworking() error { return nil }

func stopNetworking() {}
