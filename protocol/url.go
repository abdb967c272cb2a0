package protocol

import "strings"

const schemeDelimiter = "://"

// Decompose splits rawURL into scheme, host, port and path.
//
// Each delimiter ("://", then "/", then ":") is split on its first
// occurrence and is optional. A missing port becomes DefaultPort and a
// missing path becomes empty. Nothing is decoded or validated: query
// strings and fragments stay in Path, the port stays opaque text, and empty
// pieces are returned as empty strings.
func Decompose(rawURL string) URLComponents {
	scheme, remainder, found := strings.Cut(rawURL, schemeDelimiter)
	if !found {
		scheme, remainder = "", rawURL
	}

	hostAndPort, path, _ := strings.Cut(remainder, "/")

	host, port, found := strings.Cut(hostAndPort, ":")
	if !found {
		port = DefaultPort
	}

	return URLComponents{
		Scheme: scheme,
		Host:   host,
		Port:   port,
		Path:   path,
	}
}
