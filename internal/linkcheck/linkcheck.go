// Copyright Sigmanaut Labs, 2026. All rights reserved.

// Package linkcheck verifies the URLs referenced by the knowledge base
// content, primarily the resource_paths section. It is maintenance tooling
// for the content, not part of the chunk index runtime.
package linkcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/sigmanaut-labs/ergokb/internal/httputil"
	"github.com/sigmanaut-labs/ergokb/pkg/types"
)

var urlPattern = regexp.MustCompile(`https?://[^\s)\]>"']+`)

// ExtractURLs returns the unique http(s) URLs found in text, in order of
// first appearance. Trailing punctuation from surrounding prose is trimmed.
func ExtractURLs(text string) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, u := range urlPattern.FindAllString(text, -1) {
		for len(u) > 0 {
			last := u[len(u)-1]
			if last == '.' || last == ',' || last == ';' || last == ':' {
				u = u[:len(u)-1]
				continue
			}
			break
		}
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls
}

// Result records the outcome of checking one URL.
type Result struct {
	URL    string
	Status int
	Err    string
}

// OK reports whether the URL resolved to a 2xx or 3xx response.
func (r Result) OK() bool {
	return r.Err == "" && r.Status >= 200 && r.Status < 400
}

// Summary aggregates a check run.
type Summary struct {
	OK     int
	Broken int
}

// Total returns the number of URLs checked.
func (s Summary) Total() int {
	return s.OK + s.Broken
}

// Checker verifies URLs with bounded concurrency and 429-aware retries.
type Checker struct {
	client      *http.Client
	userAgent   string
	maxRetries  int
	concurrency int
}

// NewChecker builds a Checker from configuration, applying defaults for
// unset fields (10 s timeout, 3 retries, 4 workers).
func NewChecker(cfg types.LinkCheckConfig) *Checker {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "ergokb/0.1"
	}
	return &Checker{
		client:      &http.Client{Timeout: timeout},
		userAgent:   userAgent,
		maxRetries:  cfg.MaxRetries,
		concurrency: concurrency,
	}
}

// Check verifies each URL and returns results in input order, logging one
// line per URL to w. It tries HEAD first and falls back to GET when the
// server rejects HEAD.
func (c *Checker) Check(ctx context.Context, urls []string, w io.Writer) ([]Result, Summary) {
	results := make([]Result, len(urls))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < c.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = c.checkOne(ctx, urls[idx])
			}
		}()
	}

	for i := range urls {
		select {
		case <-ctx.Done():
			// Mark the rest as unchecked and stop feeding workers.
			for j := i; j < len(urls); j++ {
				results[j] = Result{URL: urls[j], Err: ctx.Err().Error()}
			}
			close(jobs)
			wg.Wait()
			return results, summarize(results, w)
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results, summarize(results, w)
}

func summarize(results []Result, w io.Writer) Summary {
	var s Summary
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(w, "ok      %s (%d)\n", r.URL, r.Status)
			s.OK++
			continue
		}
		if r.Err != "" {
			fmt.Fprintf(w, "broken  %s: %s\n", r.URL, r.Err)
		} else {
			fmt.Fprintf(w, "broken  %s (%d)\n", r.URL, r.Status)
		}
		s.Broken++
	}
	fmt.Fprintf(w, "\nok: %d, broken: %d\n", s.OK, s.Broken)
	return s
}

func (c *Checker) checkOne(ctx context.Context, url string) Result {
	status, err := c.request(ctx, http.MethodHead, url)
	if err == nil && (status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented) {
		status, err = c.request(ctx, http.MethodGet, url)
	}
	if err != nil {
		return Result{URL: url, Err: err.Error()}
	}
	return Result{URL: url, Status: status}
}

func (c *Checker) request(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := httputil.DoWithRetry(ctx, c.client, req, c.maxRetries)
	if err != nil {
		return 0, err
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp.StatusCode, nil
}
