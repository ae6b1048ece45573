package castsvg

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DefaultCastServer hosts public recordings referenced by bare ids.
const DefaultCastServer = "https://asciinema.org"

// Source supplies the raw bytes of a recording. Implementations cover local
// files, arbitrary URLs, and ids on a public cast server.
type Source interface {
	Open() (io.ReadCloser, error)
}

// FileSource reads a recording from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Open() (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening cast file: %w", err)
	}
	return f, nil
}

// URLSource fetches a recording over HTTP(S).
type URLSource struct {
	URL string
}

func (s URLSource) Open() (io.ReadCloser, error) {
	slog.Info("fetching cast file", "url", s.URL)

	resp, err := http.Get(s.URL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.URL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: server returned %s", s.URL, resp.Status)
	}

	return resp.Body, nil
}

// RemoteSource fetches a recording by id from a cast server.
type RemoteSource struct {
	ID     string
	Server string
}

func (s RemoteSource) Open() (io.ReadCloser, error) {
	server := s.Server
	if server == "" {
		server = DefaultCastServer
	}
	return URLSource{URL: fmt.Sprintf("%s/a/%s.cast", server, s.ID)}.Open()
}

// OpenInput resolves an input argument to a byte stream: an existing file
// path reads the file, a string containing "://" fetches the URL, and
// anything else is treated as a recording id on the default cast server.
func OpenInput(input string) (io.ReadCloser, error) {
	if _, err := os.Stat(input); err == nil {
		return FileSource{Path: input}.Open()
	}

	if strings.Contains(input, "://") {
		return URLSource{URL: input}.Open()
	}

	return RemoteSource{ID: input}.Open()
}

// ResolveOutputPath creates any missing parent directories for the output
// file and returns the cleaned path.
func ResolveOutputPath(path string) (string, error) {
	path = filepath.Clean(path)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
	}

	return path, nil
}
