package async

import "context"

// Exec runs fn(ctx, param) in a new goroutine for operations without a result value.
// The future resolves to struct{} and the returned error.
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *Future[struct{}] {
	return Async(ctx, param, func(ctx context.Context, p T) (struct{}, error) {
		return struct{}{}, fn(ctx, p)
	})
}
