package port

import "context"

// PushSender delivers a push notification to the external provider.
// Delivery is best-effort; callers must never let a send failure affect a
// committed transition.
type PushSender interface {
	Send(ctx context.Context, targetUserIDs []int64, title, body, link string) error
}
