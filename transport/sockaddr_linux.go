//go:build linux

package transport

import (
	"fmt"
	"net"
	"syscall"

	"github.com/nczempin/rawcurl/errors"
)

// resolveSockaddr resolves host and port into a raw socket address and the
// matching address family.
func resolveSockaddr(host, port string) (syscall.Sockaddr, int, error) {
	addr := net.JoinHostPort(host, port)
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, 0, errors.NewTransportError(
			errors.TransportErrorDnsFailure,
			fmt.Sprintf("failed to resolve %s", addr),
			err,
		)
	}

	if ip4 := tcpAddr.IP.To4(); ip4 != nil {
		sa4 := &syscall.SockaddrInet4{Port: tcpAddr.Port}
		copy(sa4.Addr[:], ip4)
		return sa4, syscall.AF_INET, nil
	}

	sa6 := &syscall.SockaddrInet6{Port: tcpAddr.Port}
	copy(sa6.Addr[:], tcpAddr.IP.To16())
	return sa6, syscall.AF_INET6, nil
}
