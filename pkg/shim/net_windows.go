//go:build windows

package shim

import "golang.org/x/sys/windows"

func startNetworking() error {
	var data windows.WSAData
	return windows.WSAStartup(uint32(0x101), &data)
}

func stopNetworking() {
	_ = windows.WSACleanup()
}
