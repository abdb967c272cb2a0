//go:build !linux

package transport

import "github.com/nczempin/rawcurl/errors"

// UringTransport is only available on Linux.
type UringTransport struct{ TcpTransport }

// UringTransportV2 is only available on Linux.
type UringTransportV2 struct{ TcpTransport }

// NewUringTransport always fails outside Linux.
func NewUringTransport() (*UringTransport, error) {
	return nil, errors.NewTransportError(errors.TransportErrorUnsupported, "io_uring requires linux", nil)
}

// NewUringTransportV2 always fails outside Linux.
func NewUringTransportV2() (*UringTransportV2, error) {
	return nil, errors.NewTransportError(errors.TransportErrorUnsupported, "io_uring requires linux", nil)
}
