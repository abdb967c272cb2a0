package transport

import (
	"fmt"
	"strings"

	"github.com/nczempin/rawcurl/errors"
)

// Transport defines the interface for network I/O operations.
// Implementations include TCP, Unix domain sockets and io_uring backed TCP.
type Transport interface {
	// Connect establishes a connection to the specified host and port.
	// The port is carried as text exactly as it appeared in the URL.
	// For Unix sockets, the host parameter is the socket path and port is ignored.
	Connect(host string, port string) error

	// Write sends data to the connected peer.
	// Returns the number of bytes written or an error.
	Write(buf []byte) (int, error)

	// Read receives data from the connected peer.
	// Returns the number of bytes read or an error.
	Read(buf []byte) (int, error)

	// Close closes the connection.
	Close() error
}

// Kind selects a Transport implementation.
type Kind string

const (
	KindTcp     Kind = "tcp"
	KindUnix    Kind = "unix"
	KindUring   Kind = "uring"
	KindUringV2 Kind = "uring-v2"
)

// Kinds lists every supported transport kind.
var Kinds = []Kind{KindTcp, KindUnix, KindUring, KindUringV2}

// ParseKind maps a configuration value onto a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return KindTcp, nil
	}
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", errors.NewInvalidArgumentError(fmt.Sprintf("unknown transport %q", s))
}

// New creates a transport of the given kind. io_uring kinds own a ring and
// must be released with Release once the caller is done.
func New(kind Kind) (Transport, error) {
	switch kind {
	case KindTcp, "":
		return NewTcpTransport(), nil
	case KindUnix:
		return NewUnixTransport(), nil
	case KindUring:
		t, err := NewUringTransport()
		if err != nil {
			return nil, err
		}
		return t, nil
	case KindUringV2:
		t, err := NewUringTransportV2()
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, errors.NewInvalidArgumentError(fmt.Sprintf("unknown transport %q", kind))
	}
}

// destroyer is implemented by transports holding resources beyond the connection.
type destroyer interface {
	Destroy()
}

// Release closes t and frees any ring it owns.
func Release(t Transport) {
	if d, ok := t.(destroyer); ok {
		d.Destroy()
		return
	}
	t.Close()
}
