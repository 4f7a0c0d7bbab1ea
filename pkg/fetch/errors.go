package fetch

import "errors"

// ErrFetchFailed wraps any non-200 response or transport failure from
// the rate venue's HTTP API.
var ErrFetchFailed = errors.New("fetch: request failed")
