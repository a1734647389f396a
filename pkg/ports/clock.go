package ports

import (
	"context"
	"time"
)

// Clock abstracts time so frame pacing can be tested without real sleeping.
type Clock interface {
	// Now returns the current time, carrying a monotonic reading when available.
	Now() time.Time

	// Sleep suspends for d or until ctx is done, whichever happens first.
	Sleep(ctx context.Context, d time.Duration)
}
