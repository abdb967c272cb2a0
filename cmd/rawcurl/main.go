// Command rawcurl sends one hand-framed HTTP/1.1 request over a raw stream
// connection and prints the response body.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nczempin/rawcurl/cli"
	"github.com/nczempin/rawcurl/client"
	"github.com/nczempin/rawcurl/config"
	"github.com/nczempin/rawcurl/logging"
	"github.com/nczempin/rawcurl/protocol"
	"github.com/nczempin/rawcurl/transport"
)

func main() {
	os.Exit(run(os.Args[1:], config.DefaultPath(), os.Stdout, os.Stderr))
}

func run(args []string, configPath string, stdout, stderr io.Writer) int {
	prog := filepath.Base(os.Args[0])

	parsed, err := cli.Tokenize(args)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", prog, err)
		return 1
	}

	opts, resolveErr := cli.Resolve(parsed.Flags)
	// Help never depends on the config file being readable
	if opts.Help {
		cli.Usage(stdout, prog)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", prog, err)
		return 1
	}

	logCfg := cfg.Logging()
	logCfg.Output = stderr
	logger := logging.New(logCfg)
	logging.SetDefault(logger)

	for _, unknown := range parsed.Unknown {
		logger.Warn("ignoring argument", "error", unknown)
	}

	if resolveErr != nil {
		fmt.Fprintf(stderr, "%s: %v\n", prog, resolveErr)
		cli.Usage(stderr, prog)
		return 1
	}

	for _, header := range opts.Params.Headers {
		if err := cli.ValidateHeaderLine(header); err != nil {
			logger.Warn("sending malformed header line verbatim", "error", err)
		}
	}

	tr, err := transport.New(cfg.TransportKind())
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", prog, err)
		return 1
	}
	defer transport.Release(tr)

	clientOpts := []client.Option{client.WithLogger(logger)}
	if cfg.TransportKind() == transport.KindUnix {
		clientOpts = append(clientOpts, client.WithUnixSocket(cfg.UnixSocket))
	}
	c := client.NewHttpClientWithTransport(tr, []protocol.Option{
		protocol.WithReadChunkSize(cfg.ReadChunkSize),
		protocol.WithMaxResponseSize(cfg.MaxResponseSize),
	}, clientOpts...)

	exchange, err := c.Execute(opts.URL, opts.Params)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to complete request: %v\n", err)
		return 1
	}

	// bufio keeps the first write error, so Flush reports any of them
	out := bufio.NewWriter(stdout)
	if opts.Verbose {
		echoLines(out, "> ", exchange.Request)
		echoLines(out, "< ", exchange.Response.Header)
	}
	out.Write(exchange.Response.Body)
	out.WriteString("\n")
	if err := out.Flush(); err != nil {
		fmt.Fprintf(stderr, "%s: writing response: %v\n", prog, err)
		return 1
	}

	return 0
}

// echoLines writes each CRLF-separated line of block behind prefix.
func echoLines(w io.Writer, prefix string, block []byte) {
	for _, line := range bytes.Split(bytes.TrimSuffix(block, []byte("\r\n")), []byte("\r\n")) {
		fmt.Fprintf(w, "%s%s\n", prefix, line)
	}
}
