// Package res acquires and prepares external resources for the report: the
// cover logo by path, URL or data URL, and image bytes of any supported
// format readied for PDF embedding.
package res

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/reportkit/reportkit/pkg/report"
)

// DefaultFetchTimeout bounds remote logo fetches so a hung server cannot
// stall a generation.
const DefaultFetchTimeout = 15 * time.Second

// Loader resolves resource references to raw bytes. A reference is a local
// path, an http(s) URL or a data: URL; relative paths are tried against the
// registered search directories when they do not resolve directly.
type Loader struct {
	searchPaths []string
	client      *http.Client
}

// NewLoader creates a loader with a timeout-bounded HTTP client.
func NewLoader() *Loader {
	return &Loader{
		searchPaths: []string{},
		client:      &http.Client{Timeout: DefaultFetchTimeout},
	}
}

// AddSearchPath registers a directory tried for relative file references.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// SetClient replaces the HTTP client used for remote references.
func (l *Loader) SetClient(client *http.Client) {
	if client != nil {
		l.client = client
	}
}

// Load fetches the bytes behind ref. Failures are reported as
// *report.ResourceError so callers can degrade with a presentation fallback.
func (l *Loader) Load(ref string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasPrefix(ref, "data:"):
		data, err = parseDataURL(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		data, err = l.loadRemote(ref)
	default:
		data, err = l.loadLocal(ref)
	}
	if err != nil {
		return nil, &report.ResourceError{Source: ref, Err: err}
	}
	return data, nil
}

// loadRemote fetches a resource over HTTP.
func (l *Loader) loadRemote(rawURL string) ([]byte, error) {
	resp, err := l.client.Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch resource: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch resource: status code %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource data: %w", err)
	}
	return data, nil
}

// loadLocal reads a resource from the file system, falling back to the
// search paths for relative references that do not resolve directly.
func (l *Loader) loadLocal(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) || filepath.IsAbs(path) {
		return nil, fmt.Errorf("failed to read resource file: %w", err)
	}

	for _, dir := range l.searchPaths {
		if data, serr := os.ReadFile(filepath.Join(dir, path)); serr == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("failed to read resource file: %w", err)
}

// parseDataURL decodes a data: URL into bytes. Both base64 and URL-escaped
// payloads are handled.
func parseDataURL(dataURL string) ([]byte, error) {
	raw := strings.TrimPrefix(dataURL, "data:")
	comma := strings.Index(raw, ",")
	if comma < 0 {
		return nil, fmt.Errorf("invalid data URL format")
	}
	meta, payload := raw[:comma], raw[comma+1:]

	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 data: %w", err)
		}
		return data, nil
	}

	decoded, err := url.QueryUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to unescape data: %w", err)
	}
	return []byte(decoded), nil
}
