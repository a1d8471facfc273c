package services

import (
	"fmt"
	"net"
	"strconv"
)

// FindAvailablePort returns the first port in [startPort, endPort] that
// can be bound on host.
func FindAvailablePort(host string, startPort, endPort int) (int, error) {
	for port := startPort; port <= endPort; port++ {
		listener, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err == nil {
			listener.Close()
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port in range %d-%d", startPort, endPort)
}

// ResolveListenAddr returns addr if it can be bound, otherwise the same
// host with the next free port among the following ten.
func ResolveListenAddr(addr string) (string, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", fmt.Errorf("invalid port in %q: %w", addr, err)
	}
	if port == 0 {
		return addr, nil
	}
	free, err := FindAvailablePort(host, port, port+10)
	if err != nil {
		return "", err
	}
	return net.JoinHostPort(host, strconv.Itoa(free)), nil
}
