// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client talks to catalog mirrors: it probes for a live mirror,
// runs search queries, and fetches individual pages for link resolution.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/IanJ332/PyLibGen/internal/httputil"
	"github.com/IanJ332/PyLibGen/pkg/types"
)

// DefaultMirrors are probed in order when the configuration names none.
var DefaultMirrors = []string{
	"http://libgen.rs",
	"http://libgen.is",
	"http://libgen.st",
}

// Endpoints relative to the selected mirror.
const (
	searchEndpoint = "/search.php"
	lookupEndpoint = "/json.php"
)

const (
	defaultProbeTimeout = 5 * time.Second
	defaultLimit        = 25
)

// Client queries one selected mirror. It holds the only cross-call state
// in the pipeline (the chosen mirror), so build one per session and share
// it freely: all methods are read-only after construction.
type Client struct {
	http     *http.Client
	mirror   string
	cfg      types.MirrorConfig
	progress io.Writer
}

// New probes the configured mirrors and returns a client bound to the
// first one that answers HTTP 200 within the probe timeout. It fails only
// when no mirror responds at all.
func New(cfg types.MirrorConfig, progress io.Writer) (*Client, error) {
	mirrors := cfg.Mirrors
	if len(mirrors) == 0 {
		mirrors = DefaultMirrors
	}
	probeTimeout := cfg.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}

	c := &Client{
		http:     httputil.NewClient(cfg.Timeout),
		cfg:      cfg,
		progress: progress,
	}

	probe := httputil.NewClient(probeTimeout)
	for _, mirror := range mirrors {
		req, err := http.NewRequest(http.MethodGet, mirror, nil)
		if err != nil {
			continue
		}
		c.setHeaders(req)
		resp, err := probe.Do(req)
		if err != nil {
			continue
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			c.mirror = mirror
			c.infof("using mirror: %s\n", mirror)
			return c, nil
		}
	}
	return nil, fmt.Errorf("could not connect to any mirror (tried %s)", strings.Join(mirrors, ", "))
}

// Mirror returns the selected mirror base URL.
func (c *Client) Mirror() string { return c.mirror }

// Search runs a catalog query and returns the raw response body together
// with its content type. The caller picks the matching ResultSource:
// mirrors answer with HTML or JSON depending on the endpoint build.
func (c *Client) Search(ctx context.Context, query string, fields []string, limit int) (body []byte, contentType string, err error) {
	if limit <= 0 {
		limit = c.cfg.Limit
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	params := url.Values{
		"req":   {query},
		"limit": {fmt.Sprintf("%d", limit)},
	}
	if len(fields) > 0 {
		params.Set("column", strings.Join(fields, ","))
	}

	return c.get(ctx, c.mirror+searchEndpoint+"?"+params.Encode())
}

// Lookup fetches the JSON metadata payload for one or more record IDs.
func (c *Client) Lookup(ctx context.Context, ids ...string) ([]byte, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("no record IDs given")
	}
	params := url.Values{"ids": {strings.Join(ids, ",")}}
	body, _, err := c.get(ctx, c.mirror+lookupEndpoint+"?"+params.Encode())
	return body, err
}

// Fetch retrieves an arbitrary URL. It satisfies the extractor's Fetcher
// capability for landing-page link resolution.
func (c *Client) Fetch(ctx context.Context, rawURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return nil, "", fmt.Errorf("mirror request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("mirror returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading response: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) setHeaders(req *http.Request) {
	ua := c.cfg.UserAgent
	if ua == "" {
		ua = "libgen-explorer/0.1"
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "application/json, text/html")
}

func (c *Client) infof(format string, args ...any) {
	if c.progress != nil {
		fmt.Fprintf(c.progress, format, args...)
	}
}
