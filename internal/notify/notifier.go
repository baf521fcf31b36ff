// Package notify delivers outbound user notifications. Delivery is
// best-effort: callers treat a returned error as "not delivered" and
// never retry or surface it to the triggering user.
package notify

import "context"

// Notifier sends a short text notification to the user identified by
// their platform (external) ID.
type Notifier interface {
	Notify(ctx context.Context, externalID, text string) error
}
