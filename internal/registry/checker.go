// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry confirms real-world existence of claimed identifiers
// against authoritative registries: Crossref for DOIs, Open Library for
// ISBNs, and the arXiv API for preprint IDs. Lookups are cached with a
// TTL, retried with bounded backoff, and rate-limited per registry;
// every expected failure mode maps to a result value, never an error.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/citation-verifier/internal/httputil"
	"github.com/pdiddy/citation-verifier/pkg/types"
)

// DefaultTimeout is the per-request timeout for registry calls.
const DefaultTimeout = 10 * time.Second

// defaultRequestsPerSecond caps the client-side rate per registry.
const defaultRequestsPerSecond = 2

// errNotFound is the parse-level signal that a 200 response carries no
// work (the arXiv API reports unknown IDs inside a well-formed feed).
var errNotFound = errors.New("work not found")

// Checker performs existence lookups. Safe for concurrent use; the one
// piece of shared mutable state is the lookup cache.
type Checker struct {
	client   *http.Client
	cfg      types.RegistryConfig
	cache    *lookupCache
	limiters map[string]*rate.Limiter
}

// NewChecker builds a Checker from cfg, filling defaults for zero
// values (10s timeout, 3 attempts, 24h TTL, 2 req/s per registry).
func NewChecker(cfg types.RegistryConfig) *Checker {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = defaultRequestsPerSecond
	}

	limiters := make(map[string]*rate.Limiter)
	if cfg.RequestsPerSecond > 0 {
		for _, name := range []string{registryCrossref, registryOpenLibrary, registryArxiv} {
			limiters[name] = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
		}
	}

	return &Checker{
		client:   &http.Client{Timeout: cfg.Timeout},
		cfg:      cfg,
		cache:    newLookupCache(cfg.CacheTTL, time.Now),
		limiters: limiters,
	}
}

// ClearCache drops every cached lookup. Used for tests and operational
// resets.
func (c *Checker) ClearCache() {
	c.cache.clear()
}

// CheckDOI confirms a DOI against Crossref.
func (c *Checker) CheckDOI(ctx context.Context, doi string) (types.ValidationResult, *types.SourceMetadata) {
	return c.lookup(ctx, registryCrossref, "doi", "doi:"+doi, crossrefURL(doi, c.cfg.ContactEmail), parseCrossref)
}

// CheckISBN confirms an ISBN against Open Library.
func (c *Checker) CheckISBN(ctx context.Context, isbn string) (types.ValidationResult, *types.SourceMetadata) {
	return c.lookup(ctx, registryOpenLibrary, "isbn", "isbn:"+isbn, openLibraryURL(isbn), openLibraryParser(isbn))
}

// CheckArxiv confirms an arXiv ID against the arXiv API.
func (c *Checker) CheckArxiv(ctx context.Context, id string) (types.ValidationResult, *types.SourceMetadata) {
	return c.lookup(ctx, registryArxiv, "arxiv_id", "arxiv:"+id, arxivURL(id), arxivParser(id))
}

// lookup runs the shared cache/retry/normalize flow for one registry
// call. parse converts the raw 200 body into canonical metadata; it
// returns errNotFound when a well-formed body reports an unknown work.
func (c *Checker) lookup(
	ctx context.Context,
	registryName, field, cacheKey, url string,
	parse func([]byte) (types.SourceMetadata, error),
) (types.ValidationResult, *types.SourceMetadata) {
	if md, ok := c.cache.get(cacheKey); ok {
		return types.ValidationResult{
			Status:  types.StatusValid,
			Layer:   types.LayerExistence,
			Message: fmt.Sprintf("found in %s", registryName),
			Field:   field,
			Details: map[string]any{"cached": true},
		}, &md
	}

	if lim := c.limiters[registryName]; lim != nil {
		if err := lim.Wait(ctx); err != nil {
			return warning(field, fmt.Sprintf("lookup cancelled: %v", err), nil), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return warning(field, fmt.Sprintf("building %s request: %v", registryName, err), nil), nil
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.client, req, c.cfg.MaxAttempts)
	if err != nil {
		return warning(field,
			fmt.Sprintf("network error contacting %s", registryName),
			map[string]any{"error": err.Error()},
		), nil
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return types.ValidationResult{
			Status:  types.StatusInvalid,
			Layer:   types.LayerExistence,
			Message: fmt.Sprintf("not found in %s", registryName),
			Field:   field,
			Details: map[string]any{"status_code": resp.StatusCode},
		}, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return warning(field,
			fmt.Sprintf("rate limited by %s", registryName),
			map[string]any{"status_code": resp.StatusCode},
		), nil
	case resp.StatusCode != http.StatusOK:
		return warning(field,
			fmt.Sprintf("%s returned HTTP %d", registryName, resp.StatusCode),
			map[string]any{"status_code": resp.StatusCode},
		), nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return warning(field,
			fmt.Sprintf("reading %s response: %v", registryName, err), nil), nil
	}

	md, err := parse(body)
	if errors.Is(err, errNotFound) {
		return types.ValidationResult{
			Status:  types.StatusInvalid,
			Layer:   types.LayerExistence,
			Message: fmt.Sprintf("not found in %s", registryName),
			Field:   field,
		}, nil
	}
	if err != nil {
		return warning(field,
			fmt.Sprintf("could not parse %s response", registryName),
			map[string]any{"error": err.Error()},
		), nil
	}

	c.cache.put(cacheKey, md)

	return types.ValidationResult{
		Status:  types.StatusValid,
		Layer:   types.LayerExistence,
		Message: fmt.Sprintf("found in %s", registryName),
		Field:   field,
		Details: map[string]any{"identifier": md.Identifier},
	}, &md
}

func warning(field, msg string, details map[string]any) types.ValidationResult {
	return types.ValidationResult{
		Status:  types.StatusWarning,
		Layer:   types.LayerExistence,
		Message: msg,
		Field:   field,
		Details: details,
	}
}
