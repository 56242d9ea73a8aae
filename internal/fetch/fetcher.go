// Package fetch is the retrieval+normalize collaborator: it downloads a
// source document, unpacks ZIP responses, and returns normalized XML bytes
// ready for fingerprinting. The diff engine consumes it through the
// Retriever interface and never sees HTTP details.
package fetch

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mshibata/eliwatch/internal/model"
	"github.com/mshibata/eliwatch/internal/normalize"
)

// ErrRetrieval marks any failure to obtain a normalized candidate document.
// A failed retrieval aborts that source's diff run and nothing else.
var ErrRetrieval = errors.New("retrieval failed")

const fetchMaxRetries = 3

// fetchSleepFunc is the sleep used between retries (injectable for tests).
var fetchSleepFunc = time.Sleep

// Fetcher downloads and normalizes source documents.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    *hostLimiter
	robots     *robotsChecker // nil when robots.txt checking is disabled
}

// New creates a Fetcher from the HTTP configuration.
func New(cfg model.HTTPConfig) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		limiter:   newHostLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}
	if cfg.RespectRobots {
		f.robots = newRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}
	return f
}

// Retrieve downloads the source at rawURL and returns normalized XML bytes.
// ZIP responses are unpacked in memory, taking the first .xml member.
func (f *Fetcher) Retrieve(ctx context.Context, rawURL string) ([]byte, error) {
	if f.robots != nil && !f.robots.allowed(ctx, rawURL) {
		return nil, fmt.Errorf("%w: disallowed by robots.txt: %s", ErrRetrieval, rawURL)
	}

	if err := f.limiter.wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("%w: rate limit: %v", ErrRetrieval, err)
	}

	body, contentType, err := f.fetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrieval, err)
	}

	if isZip(rawURL, contentType, body) {
		body, err = firstXMLEntry(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRetrieval, err)
		}
	}

	normalized, err := normalize.Normalize(body)
	if err != nil {
		// Proceed with the cleaned bytes; the feed occasionally ships
		// markup the tokenizer rejects but downstream parsing survives.
		fmt.Fprintf(os.Stderr, "Warning: normalize %s: %v\n", rawURL, err)
	}
	return normalized, nil
}

// fetchWithRetry retries transient (5xx, network) failures with backoff.
// Client errors fail immediately.
func (f *Fetcher) fetchWithRetry(ctx context.Context, rawURL string) ([]byte, string, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchMaxRetries; attempt++ {
		body, contentType, retryable, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			return body, contentType, nil
		}
		lastErr = err
		if !retryable || attempt == fetchMaxRetries {
			break
		}
		fetchSleepFunc(time.Duration(attempt) * time.Second)
	}
	return nil, "", lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (data []byte, contentType string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/xml,text/xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", true, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", resp.StatusCode >= 500, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, "", true, fmt.Errorf("read body: %w", err)
	}

	return body, resp.Header.Get("Content-Type"), false, nil
}

var zipMagic = []byte("PK\x03\x04")

func isZip(rawURL, contentType string, body []byte) bool {
	if strings.HasSuffix(strings.ToLower(rawURL), ".zip") {
		return true
	}
	if strings.Contains(contentType, "application/zip") {
		return true
	}
	return bytes.HasPrefix(body, zipMagic)
}

// firstXMLEntry unpacks a ZIP archive in memory and returns the first .xml
// member's content.
func firstXMLEntry(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	for _, file := range zr.File {
		if !strings.HasSuffix(strings.ToLower(file.Name), ".xml") {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open zip member %s: %w", file.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read zip member %s: %w", file.Name, err)
		}
		return content, nil
	}

	return nil, errors.New("no XML file in ZIP archive")
}
