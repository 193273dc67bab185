// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the registry clients.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"
)

// BackoffSchedule holds the sleep between successive attempts. Attempt
// n waits BackoffSchedule[n] (the last entry repeats when the budget
// exceeds the schedule). Tests override this to avoid real sleeps.
var BackoffSchedule = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

const defaultMaxAttempts = 3

// DoWithRetry executes an HTTP request with a bounded attempt budget.
// Retryable outcomes are transport errors (connect/timeout), HTTP 5xx,
// and HTTP 429; everything else returns immediately. On 429 a numeric
// Retry-After header overrides the schedule for that wait. When the
// budget is exhausted the last response (or last transport error) is
// returned so the caller can map it to a verdict. If the context is
// cancelled during a wait the function returns ctx.Err().
//
// maxAttempts counts the first try; zero or negative selects the
// default (3).
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxAttempts int) (*http.Response, error) {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		last := attempt >= maxAttempts-1

		if err != nil {
			if last {
				return nil, err
			}
			if werr := wait(ctx, backoffAt(attempt)); werr != nil {
				return nil, werr
			}
			continue
		}

		if !retryable(resp.StatusCode) || last {
			return resp, nil
		}

		delay := backoffAt(attempt)
		if resp.StatusCode == http.StatusTooManyRequests {
			if ra, ok := retryAfter(resp); ok {
				delay = ra
			}
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if werr := wait(ctx, delay); werr != nil {
			return nil, werr
		}
	}
}

func retryable(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

// backoffAt returns the wait after attempt n, clamping to the last
// schedule entry.
func backoffAt(attempt int) time.Duration {
	if attempt >= len(BackoffSchedule) {
		return BackoffSchedule[len(BackoffSchedule)-1]
	}
	return BackoffSchedule[attempt]
}

// retryAfter parses a numeric Retry-After header (seconds). HTTP-date
// forms are ignored; the schedule covers them.
func retryAfter(resp *http.Response) (time.Duration, bool) {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

func wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
