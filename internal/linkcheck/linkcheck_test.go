// Copyright Sigmanaut Labs, 2026. All rights reserved.

package linkcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmanaut-labs/ergokb/internal/httputil"
	"github.com/sigmanaut-labs/ergokb/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain urls",
			text: "See https://docs.ergoplatform.com/dev/scs/ergoscript/ and http://example.com/a",
			want: []string{"https://docs.ergoplatform.com/dev/scs/ergoscript/", "http://example.com/a"},
		},
		{
			name: "trailing punctuation trimmed",
			text: "Read https://example.com/guide, then https://example.com/spec.",
			want: []string{"https://example.com/guide", "https://example.com/spec"},
		},
		{
			name: "markdown link delimiters excluded",
			text: "[guide](https://example.com/guide) and <https://example.com/spec>",
			want: []string{"https://example.com/guide", "https://example.com/spec"},
		},
		{
			name: "duplicates removed first occurrence wins",
			text: "https://example.com/x then https://example.com/y then https://example.com/x",
			want: []string{"https://example.com/x", "https://example.com/y"},
		},
		{
			name: "no urls",
			text: "nothing to see here",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractURLs(tt.text))
		})
	}
}

func TestCheckReportsOKAndBroken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/moved":
			w.WriteHeader(http.StatusFound)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	checker := NewChecker(types.LinkCheckConfig{Concurrency: 2})
	urls := []string{ts.URL + "/ok", ts.URL + "/moved", ts.URL + "/missing"}

	var buf strings.Builder
	results, summary := checker.Check(context.Background(), urls, &buf)

	require.Len(t, results, 3)
	assert.True(t, results[0].OK())
	assert.True(t, results[1].OK())
	assert.False(t, results[2].OK())
	assert.Equal(t, http.StatusNotFound, results[2].Status)

	assert.Equal(t, 2, summary.OK)
	assert.Equal(t, 1, summary.Broken)
	assert.Equal(t, 3, summary.Total())
	assert.Contains(t, buf.String(), "ok: 2, broken: 1")
}

func TestCheckResultsKeepInputOrder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	urls := []string{ts.URL + "/1", ts.URL + "/2", ts.URL + "/3", ts.URL + "/4"}
	checker := NewChecker(types.LinkCheckConfig{Concurrency: 4})

	var buf strings.Builder
	results, _ := checker.Check(context.Background(), urls, &buf)

	require.Len(t, results, len(urls))
	for i, r := range results {
		assert.Equal(t, urls[i], r.URL)
	}
}

func TestCheckFallsBackToGET(t *testing.T) {
	var gets int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		atomic.AddInt32(&gets, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	checker := NewChecker(types.LinkCheckConfig{})

	var buf strings.Builder
	results, summary := checker.Check(context.Background(), []string{ts.URL}, &buf)

	require.Len(t, results, 1)
	assert.True(t, results[0].OK())
	assert.Equal(t, 1, summary.OK)
	assert.Equal(t, int32(1), atomic.LoadInt32(&gets))
}

func TestCheckRetriesRateLimits(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	checker := NewChecker(types.LinkCheckConfig{MaxRetries: 3})

	var buf strings.Builder
	_, summary := checker.Check(context.Background(), []string{ts.URL}, &buf)

	assert.Equal(t, 1, summary.OK)
	assert.Equal(t, 0, summary.Broken)
}

func TestCheckUnreachableHost(t *testing.T) {
	// A server that is already closed refuses connections.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := ts.URL
	ts.Close()

	checker := NewChecker(types.LinkCheckConfig{})

	var buf strings.Builder
	results, summary := checker.Check(context.Background(), []string{url}, &buf)

	require.Len(t, results, 1)
	assert.False(t, results[0].OK())
	assert.NotEmpty(t, results[0].Err)
	assert.Equal(t, 1, summary.Broken)
}

func TestCheckContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker := NewChecker(types.LinkCheckConfig{Concurrency: 1})

	var buf strings.Builder
	results, summary := checker.Check(ctx, []string{"https://example.com/a", "https://example.com/b"}, &buf)

	require.Len(t, results, 2)
	assert.Equal(t, 2, summary.Broken)
}

func TestResultOK(t *testing.T) {
	assert.True(t, Result{Status: 200}.OK())
	assert.True(t, Result{Status: 301}.OK())
	assert.False(t, Result{Status: 404}.OK())
	assert.False(t, Result{Status: 200, Err: "boom"}.OK())
	assert.False(t, Result{}.OK())
}
