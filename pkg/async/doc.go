// Package async runs blocking operations in the background and hands back a
// future for the result.
//
//	future := async.Async(ctx, draft, store.Add)
//	album, err := future.AwaitWithTimeout(5 * time.Second)
//	if errors.Is(err, async.ErrTimeout) {
//		// still running; the operation completes on its own
//	}
//
// Exec is the variant for operations that only return an error. A context that is
// already cancelled when the goroutine starts short-circuits the call; once started,
// the operation decides for itself whether to honour cancellation.
package async
