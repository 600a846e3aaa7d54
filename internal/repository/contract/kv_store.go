package contract

import "context"

// KeyValueStore is the durable storage the session catalog persists through.
// Get never reports failure to the caller: an unreadable or missing key is
// simply "not found". Set errors are for logging only; callers must not treat
// a failed write as a failed operation.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}
