// Package async provides small helpers for asynchronous work: a Future
// pattern for fire-and-forget side calls and a timeout-via-race wrapper for
// provider round trips.
//
// # Futures
//
// Exec runs a function in the background and returns an ExecFuture whose
// Await blocks until completion:
//
//	future := async.Exec(ctx, userID, assignDefaultRole)
//
//	// ... do other work ...
//
//	if err := future.Await(); err != nil {
//		log.Warn("best-effort side call failed", logger.Error(err))
//	}
//
// # Timeouts
//
// WithTimeout races an operation against a deadline and returns ErrTimeout
// when the deadline wins:
//
//	sess, err := async.WithTimeout(ctx, 10*time.Second, client.RefreshSession)
//	if errors.Is(err, async.ErrTimeout) {
//		// the provider call may still complete in the background;
//		// its eventual result is ignored
//	}
//
// The losing branch of the race is not cancelled and may run to completion.
// Callers must make any state mutation on that path idempotent.
package async
