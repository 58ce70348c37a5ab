package source

import "fmt"

// RemoteHint is appended to remote acquisition failures; blocked cross-origin
// or login-gated downloads are the usual cause.
const RemoteHint = "Tip: remote URLs must allow direct, unauthenticated downloads (cross-origin access enabled, no login or preview page)."

// FetchError describes a failed remote acquisition.
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *FetchError) Error() string {
	var msg string
	switch {
	case e.StatusCode != 0:
		msg = fmt.Sprintf("failed to fetch %s: %s", e.URL, e.Status)
	case e.Err != nil:
		msg = fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
	default:
		msg = fmt.Sprintf("failed to fetch %s", e.URL)
	}
	return msg + "\n\n" + RemoteHint
}

func (e *FetchError) Unwrap() error { return e.Err }

// Retryable reports whether another attempt may succeed.
func (e *FetchError) Retryable() bool {
	return e.StatusCode == 429 || (e.StatusCode >= 500 && e.StatusCode <= 599)
}
