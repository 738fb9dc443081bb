// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IanJ332/PyLibGen/pkg/types"
)

func testConfig(mirrors ...string) types.MirrorConfig {
	return types.MirrorConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "test/0.1",
		},
		Mirrors:      mirrors,
		ProbeTimeout: 2 * time.Second,
	}
}

func TestNewSelectsFirstLiveMirror(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer dead.Close()
	live := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer live.Close()

	var progress bytes.Buffer
	c, err := New(testConfig(dead.URL, live.URL), &progress)
	require.NoError(t, err)

	assert.Equal(t, live.URL, c.Mirror())
	assert.Contains(t, progress.String(), "using mirror")
}

func TestNewProbeSendsHeaders(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	_, err := New(testConfig(ts.URL), nil)
	require.NoError(t, err)
	assert.Equal(t, "test/0.1", gotUA)
}

func TestNewAllMirrorsDown(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()

	_, err := New(testConfig(down.URL), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not connect to any mirror")
}

func TestSearch(t *testing.T) {
	var gotQuery, gotLimit, gotColumn, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search.php" {
			gotQuery = r.URL.Query().Get("req")
			gotLimit = r.URL.Query().Get("limit")
			gotColumn = r.URL.Query().Get("column")
			gotUA = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte("<html><table class=\"c\"></table></html>"))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c, err := New(testConfig(ts.URL), nil)
	require.NoError(t, err)

	body, contentType, err := c.Search(context.Background(), "clean code", []string{"title", "author"}, 50)
	require.NoError(t, err)

	assert.Equal(t, "clean code", gotQuery)
	assert.Equal(t, "50", gotLimit)
	assert.Equal(t, "title,author", gotColumn)
	assert.Equal(t, "test/0.1", gotUA)
	assert.Contains(t, contentType, "text/html")
	assert.Contains(t, string(body), "table")
}

func TestSearchDefaultLimit(t *testing.T) {
	var gotLimit string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search.php" {
			gotLimit = r.URL.Query().Get("limit")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c, err := New(testConfig(ts.URL), nil)
	require.NoError(t, err)

	_, _, err = c.Search(context.Background(), "q", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "25", gotLimit)
}

func TestSearchMirrorError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search.php" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c, err := New(testConfig(ts.URL), nil)
	require.NoError(t, err)

	_, _, err = c.Search(context.Background(), "q", nil, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestLookup(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/json.php" {
			assert.Equal(t, "1,2,3", r.URL.Query().Get("ids"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":"1"}]`))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c, err := New(testConfig(ts.URL), nil)
	require.NoError(t, err)

	body, err := c.Lookup(context.Background(), "1", "2", "3")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(body))

	_, err = c.Lookup(context.Background())
	assert.Error(t, err)
}

func TestFetchReportsStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/landing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("page body"))
	}))
	defer ts.Close()

	c, err := New(testConfig(ts.URL), nil)
	require.NoError(t, err)

	status, body, err := c.Fetch(context.Background(), ts.URL+"/page")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "page body", string(body))

	status, _, err = c.Fetch(context.Background(), ts.URL+"/landing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, status)
}
