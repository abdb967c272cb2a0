package transport

import (
	stderrors "errors"
	"io"
	"net"
	"strconv"
	"strings"
	"syscall"
	"testing"

	"github.com/nczempin/rawcurl/errors"
)

// listenTCP accepts one connection on address and hands it to handle.
// It returns the listener's host and port as text.
func listenTCP(t *testing.T, network, address string, handle func(net.Conn)) (string, string) {
	t.Helper()

	listener, err := net.Listen(network, address)
	if err != nil {
		t.Skipf("%s listener unavailable: %v", network, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		handle(conn)
	}()
	t.Cleanup(func() {
		listener.Close()
		<-done
	})

	addr := listener.Addr().(*net.TCPAddr)
	return addr.IP.String(), strconv.Itoa(addr.Port)
}

// expectTransportError fails unless err is an *errors.HttpError with the given code.
func expectTransportError(t *testing.T, err error, code errors.TransportError) *errors.HttpError {
	t.Helper()

	httpErr, ok := errors.AsHttpError(err)
	if !ok {
		t.Fatalf("Expected *errors.HttpError, got %T (%v)", err, err)
	}
	if httpErr.Type != errors.ErrorTransport {
		t.Fatalf("Expected ErrorTransport, got %v", httpErr.Type)
	}
	if httpErr.TransportErr != code {
		t.Fatalf("Expected %v, got %v", code, httpErr.TransportErr)
	}
	return httpErr
}

func TestTcpTransport_Connect_JoinsTextPort(t *testing.T) {
	tests := []struct {
		name    string
		network string
		address string
	}{
		{name: "ipv4", network: "tcp4", address: "127.0.0.1:0"},
		{name: "ipv6 literal", network: "tcp6", address: "[::1]:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, port := listenTCP(t, tt.network, tt.address, func(conn net.Conn) {})

			tr := NewTcpTransport()
			if err := tr.Connect(host, port); err != nil {
				t.Fatalf("Connect(%q, %q) failed: %v", host, port, err)
			}
			defer tr.Close()

			want := net.JoinHostPort(host, port)
			if got := tr.conn.RemoteAddr().String(); got != want {
				t.Errorf("Expected remote address %q, got %q", want, got)
			}
		})
	}
}

func TestTcpTransport_Connect_DnsFailure(t *testing.T) {
	tr := NewTcpTransport()
	err := tr.Connect("rawcurl-does-not-exist.invalid", "80")
	httpErr := expectTransportError(t, err, errors.TransportErrorDnsFailure)

	if !strings.Contains(httpErr.Error(), "failed to resolve rawcurl-does-not-exist.invalid:80") {
		t.Errorf("Unexpected message: %q", httpErr.Error())
	}

	var dnsErr *net.DNSError
	if !stderrors.As(err, &dnsErr) {
		t.Errorf("Expected *net.DNSError in the chain, got %v", httpErr.UnderlyingErr)
	}
	if tr.conn != nil {
		t.Error("Connection should stay nil after a failed connect")
	}
}

func TestTcpTransport_Connect_Refused(t *testing.T) {
	// Grab a free port, then release it so nothing is listening there
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to reserve port: %v", err)
	}
	port := strconv.Itoa(listener.Addr().(*net.TCPAddr).Port)
	listener.Close()

	tr := NewTcpTransport()
	err = tr.Connect("127.0.0.1", port)
	httpErr := expectTransportError(t, err, errors.TransportErrorSocketConnectFailure)

	if want := "connection refused by 127.0.0.1:" + port; !strings.Contains(httpErr.Error(), want) {
		t.Errorf("Expected message containing %q, got %q", want, httpErr.Error())
	}
	if !stderrors.Is(err, syscall.ECONNREFUSED) {
		t.Errorf("Expected ECONNREFUSED in the chain, got %v", httpErr.UnderlyingErr)
	}
}

func TestTcpTransport_Read_PeerCloseEndsResponse(t *testing.T) {
	host, port := listenTCP(t, "tcp", "127.0.0.1:0", func(conn net.Conn) {})

	tr := NewTcpTransport()
	if err := tr.Connect(host, port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer tr.Close()

	_, err := tr.Read(make([]byte, 64))
	expectTransportError(t, err, errors.TransportErrorConnectionClosed)
	if !stderrors.Is(err, io.EOF) {
		t.Errorf("Expected io.EOF in the chain, got %v", err)
	}
}

func TestTcpTransport_NotConnected(t *testing.T) {
	tr := NewTcpTransport()

	_, err := tr.Write([]byte("GET / HTTP/1.1\r\n\r\n"))
	expectTransportError(t, err, errors.TransportErrorSocketWriteFailure)

	_, err = tr.Read(make([]byte, 16))
	expectTransportError(t, err, errors.TransportErrorSocketReadFailure)

	if err := tr.Close(); err != nil {
		t.Errorf("Close on an unconnected transport failed: %v", err)
	}
}
