// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/IanJ332/PyLibGen/pkg/types"
)

// Fetcher retrieves a URL with a bounded timeout. It is the transport
// capability the link resolution chain depends on; the mirror client
// satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (status int, body []byte, err error)
}

// Base URLs for link derivation. Declared as vars so tests can substitute
// httptest servers.
var (
	getLinkBase        = "https://library.lol/main/"
	ipfsCloudflareBase = "https://cloudflare-ipfs.com/ipfs/"
	ipfsIOBase         = "https://ipfs.io/ipfs/"
	ipfsPinataBase     = "https://gateway.pinata.cloud/ipfs/"
	torMirrorBase      = "http://libgenfrialc7tguyjywa36vtrdcplxydrxnm3f6zjbwxprqsycqad.onion/main/"
)

// downloadMarkers are href substrings that identify a download anchor on a
// landing page.
var downloadMarkers = []string{"/main/", "download"}

// resolver is one strategy for locating a record's primary download URL.
// It returns ok=false when the strategy does not apply or fails, in which
// case the next strategy in the chain is tried.
type resolver func(ctx context.Context, s *HTMLSource, rec *types.Record, lp *landingPage) (string, bool)

// resolverChain is evaluated in order; the first success wins. The final
// synthesized step always succeeds, so a linked record is never produced
// without a primary URL unless its metadata is entirely empty.
var resolverChain = []resolver{
	resolveFromHref,
	resolveDirectAnchor,
	resolveMarkerAnchor,
	resolveSynthesized,
}

// resolveLinks runs the resolver chain for one record and appends the
// offline-derivable mirror links. Resolution errors are logged and never
// discard the record.
func (s *HTMLSource) resolveLinks(ctx context.Context, rec *types.Record) {
	lp := &landingPage{href: rec.LandingURL}

	for _, step := range resolverChain {
		if u, ok := step(ctx, s, rec, lp); ok {
			rec.DownloadLinks.Add("get", u)
			break
		}
	}
	addMirrorLinks(rec)
}

// addMirrorLinks appends the constant-template mirror links derived purely
// from the record ID. These require no network access, so every record
// keeps at least these even when the whole chain fails.
func addMirrorLinks(rec *types.Record) {
	if rec.ID == "" {
		return
	}
	rec.DownloadLinks.Add("ipfs_cloudflare", ipfsCloudflareBase+rec.ID)
	rec.DownloadLinks.Add("ipfs_io", ipfsIOBase+rec.ID)
	rec.DownloadLinks.Add("ipfs_pinata", ipfsPinataBase+rec.ID)
	rec.DownloadLinks.Add("tor_mirror", torMirrorBase+rec.ID)
}

// landingPage lazily fetches and parses a record's landing page at most
// once per record, shared across the network-dependent resolvers.
type landingPage struct {
	href    string
	fetched bool
	doc     *goquery.Document
	err     error
}

func (lp *landingPage) document(ctx context.Context, f Fetcher) (*goquery.Document, error) {
	if lp.fetched {
		return lp.doc, lp.err
	}
	lp.fetched = true

	status, body, err := f.Fetch(ctx, lp.href)
	if err != nil {
		lp.err = err
		return nil, err
	}
	if status != http.StatusOK {
		lp.err = fmt.Errorf("landing page returned HTTP %d", status)
		return nil, lp.err
	}

	lp.doc, lp.err = goquery.NewDocumentFromReader(bytes.NewReader(body))
	return lp.doc, lp.err
}

// resolveFromHref derives the download URL from the landing anchor's last
// path segment without touching the network.
func resolveFromHref(_ context.Context, _ *HTMLSource, _ *types.Record, lp *landingPage) (string, bool) {
	if lp.href == "" {
		return "", false
	}
	seg := lastPathSegment(lp.href)
	if seg == "" {
		return "", false
	}
	return getLinkBase + seg, true
}

// resolveDirectAnchor fetches the landing page and looks for the anchor
// labeled as the direct-download action.
func resolveDirectAnchor(ctx context.Context, s *HTMLSource, rec *types.Record, lp *landingPage) (string, bool) {
	doc, err := s.landingDocument(ctx, rec, lp)
	if doc == nil || err != nil {
		return "", false
	}

	anchor := doc.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return strings.EqualFold(strings.TrimSpace(a.Text()), "GET")
	}).First()
	return anchorHref(anchor, lp.href)
}

// resolveMarkerAnchor searches the landing page for any anchor whose href
// contains a known download-path marker.
func resolveMarkerAnchor(ctx context.Context, s *HTMLSource, rec *types.Record, lp *landingPage) (string, bool) {
	doc, err := s.landingDocument(ctx, rec, lp)
	if doc == nil || err != nil {
		return "", false
	}

	anchor := doc.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok {
			return false
		}
		lower := strings.ToLower(href)
		for _, marker := range downloadMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
		return false
	}).First()
	return anchorHref(anchor, lp.href)
}

// resolveSynthesized builds a best-effort fallback URL by percent-encoding
// a conventional filename into the download path template. It is the last
// step and requires no network access.
func resolveSynthesized(_ context.Context, _ *HTMLSource, rec *types.Record, _ *landingPage) (string, bool) {
	name := fmt.Sprintf("%s - %s - %s", rec.Author, rec.Title, rec.Publisher)
	if rec.Year != types.UnknownInt {
		name = fmt.Sprintf("%s (%d)", name, rec.Year)
	}
	if rec.Extension != "" {
		name += "." + rec.Extension
	}
	if strings.Trim(name, " -.") == "" {
		return "", false
	}
	return getLinkBase + url.PathEscape(name), true
}

// landingDocument wraps landingPage.document with availability checks and
// warning output. A nil Fetcher or missing href disables the step.
func (s *HTMLSource) landingDocument(ctx context.Context, rec *types.Record, lp *landingPage) (*goquery.Document, error) {
	if s.Fetcher == nil || lp.href == "" {
		return nil, nil
	}
	alreadyFailed := lp.fetched && lp.err != nil

	doc, err := lp.document(ctx, s.Fetcher)
	if err != nil && !alreadyFailed {
		s.warnf("warning: link resolution for %s: %v\n", rec.ID, err)
	}
	return doc, err
}

func anchorHref(anchor *goquery.Selection, base string) (string, bool) {
	href, ok := anchor.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", false
	}
	return absoluteURL(base, href), true
}

// absoluteURL resolves href against the landing page URL so relative
// download paths remain usable.
func absoluteURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}

func lastPathSegment(raw string) string {
	trimmed := strings.TrimRight(raw, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 || idx == len(trimmed)-1 {
		return ""
	}
	seg := trimmed[idx+1:]
	// Strip any query string carried on the segment.
	if q := strings.IndexByte(seg, '?'); q >= 0 {
		seg = seg[:q]
	}
	return seg
}
