// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/IanJ332/PyLibGen/pkg/types"
)

const resultsPage = `<html><body>
<table class="c" cellpadding="2" cellspacing="1">
<tr><td>ID</td><td>Author</td><td>Title</td><td>Publisher</td><td>Year</td><td>Pages</td><td>Language</td><td>Size</td><td>Ext</td><td>Mirror</td></tr>
<tr>
  <td>1421304</td><td>Robert C. Martin</td><td>Clean Code</td><td>Prentice Hall</td>
  <td>2008</td><td>464</td><td>English</td><td>4.5 MB</td><td>PDF</td>
  <td><a href="http://library.lol/main/ABCDEF1234">[1]</a></td>
</tr>
<tr><td>short</td><td>row</td><td>with</td><td>too</td><td>few</td><td>cells</td></tr>
<tr>
  <td></td><td>Anonymous</td><td>No Identifier</td><td></td>
  <td>1999</td><td>100</td><td>English</td><td>1 MB</td><td>epub</td>
  <td><a href="http://library.lol/main/FFFF">[1]</a></td>
</tr>
<tr>
  <td>883</td><td>Hector Garcia-Molina</td><td>Database Systems</td><td>Pearson</td>
  <td>n/a</td><td></td><td>English</td><td>12.0 MB</td><td>djvu</td>
  <td><a href="http://library.lol/main/99AA"></a></td>
</tr>
</table>
</body></html>`

func TestHTMLSourceParse(t *testing.T) {
	var warnings bytes.Buffer
	src := &HTMLSource{Progress: &warnings}

	coll, err := src.Parse(context.Background(), []byte(resultsPage))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if coll.Len() != 2 {
		t.Fatalf("Parse() returned %d records, want 2", coll.Len())
	}

	rec := coll.Records[0]
	if rec.ID != "1421304" {
		t.Errorf("ID = %q, want 1421304", rec.ID)
	}
	if rec.Title != "Clean Code" || rec.Author != "Robert C. Martin" {
		t.Errorf("unexpected title/author: %q / %q", rec.Title, rec.Author)
	}
	if rec.Year != 2008 || rec.Pages != 464 {
		t.Errorf("year/pages = %d/%d, want 2008/464", rec.Year, rec.Pages)
	}
	if rec.Extension != "pdf" {
		t.Errorf("extension = %q, want pdf (lowercased)", rec.Extension)
	}
	if want := int64(4718592); rec.Filesize != want {
		t.Errorf("filesize = %d, want %d", rec.Filesize, want)
	}
	if rec.LandingURL != "http://library.lol/main/ABCDEF1234" {
		t.Errorf("landing URL = %q", rec.LandingURL)
	}

	second := coll.Records[1]
	if second.Year != types.UnknownInt {
		t.Errorf("non-numeric year = %d, want %d", second.Year, types.UnknownInt)
	}
	if second.Pages != types.UnknownInt {
		t.Errorf("empty pages = %d, want %d", second.Pages, types.UnknownInt)
	}

	if !strings.Contains(warnings.String(), "no identifier") {
		t.Errorf("expected a skip warning for the row without an ID, got %q", warnings.String())
	}
}

func TestHTMLSourceParseLinks(t *testing.T) {
	src := &HTMLSource{}

	coll, err := src.Parse(context.Background(), []byte(resultsPage))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	rec := coll.Records[0]

	get, ok := rec.DownloadLinks.Get("get")
	if !ok {
		t.Fatal("missing get link")
	}
	if want := getLinkBase + "ABCDEF1234"; get != want {
		t.Errorf("get link = %q, want %q", get, want)
	}

	for _, name := range []string{"ipfs_cloudflare", "ipfs_io", "ipfs_pinata", "tor_mirror"} {
		u, ok := rec.DownloadLinks.Get(name)
		if !ok {
			t.Errorf("missing mirror link %s", name)
			continue
		}
		if !strings.HasSuffix(u, rec.ID) {
			t.Errorf("mirror link %s = %q, want suffix %q", name, u, rec.ID)
		}
	}
}

func TestHTMLSourceParseNoTable(t *testing.T) {
	var warnings bytes.Buffer
	src := &HTMLSource{Progress: &warnings}

	coll, err := src.Parse(context.Background(), []byte("<html><body><p>maintenance</p></body></html>"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !coll.Empty() {
		t.Errorf("expected empty collection, got %d records", coll.Len())
	}
	if !strings.Contains(warnings.String(), "could not find results table") {
		t.Errorf("expected a missing-table warning, got %q", warnings.String())
	}
}

func TestHTMLSourceParseFallbackSelector(t *testing.T) {
	page := strings.Replace(resultsPage, `class="c" `, "", 1)
	src := &HTMLSource{}

	coll, err := src.Parse(context.Background(), []byte(page))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if coll.Len() != 2 {
		t.Errorf("fallback selector returned %d records, want 2", coll.Len())
	}
}

func TestJSONSourceParse(t *testing.T) {
	payload := `[
		{"id":"42","author":"Donald Knuth","title":"TAOCP","publisher":"Addison-Wesley",
		 "year":"1968","pages":"672","language":"English","filesize":"20971520","extension":"PDF"},
		{"id":"","title":"dropped: no id"},
		{"id":"43","title":"Sparse","year":"n/a","pages":"","filesize":"bad"}
	]`
	src := &JSONSource{}

	coll, err := src.Parse(context.Background(), []byte(payload))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if coll.Len() != 2 {
		t.Fatalf("Parse() returned %d records, want 2", coll.Len())
	}

	rec := coll.Records[0]
	if rec.Extension != "pdf" {
		t.Errorf("extension = %q, want pdf", rec.Extension)
	}
	if rec.Filesize != 20971520 {
		t.Errorf("filesize = %d, want 20971520", rec.Filesize)
	}
	if _, ok := rec.DownloadLinks.Get("ipfs_io"); !ok {
		t.Error("missing mirror link ipfs_io")
	}

	sparse := coll.Records[1]
	if sparse.Year != types.UnknownInt || sparse.Pages != types.UnknownInt {
		t.Errorf("sparse year/pages = %d/%d, want unknown", sparse.Year, sparse.Pages)
	}
	if sparse.Filesize != 0 {
		t.Errorf("unparsable filesize = %d, want 0", sparse.Filesize)
	}
}

func TestJSONSourceParseMalformed(t *testing.T) {
	var warnings bytes.Buffer
	src := &JSONSource{Progress: &warnings}

	coll, err := src.Parse(context.Background(), []byte("<html>not json</html>"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !coll.Empty() {
		t.Errorf("expected empty collection, got %d records", coll.Len())
	}
	if !strings.Contains(warnings.String(), "could not decode") {
		t.Errorf("expected a decode warning, got %q", warnings.String())
	}
}
