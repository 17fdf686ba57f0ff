package retry

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperror"
)

type Policy struct {
	Attempts int
	Backoff  time.Duration
}

func DefaultPolicy() Policy {
	return Policy{Attempts: 3, Backoff: 50 * time.Millisecond}
}

// OnConflict runs fn until it succeeds, fails with a non-conflict error, or
// the attempts are used up. The wait doubles after every conflict.
func OnConflict(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	wait := p.Backoff

	var err error
	for i := 0; i < attempts; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if err != nil {
				return err
			}
			return apperror.Internal(ctxErr)
		}

		err = fn(ctx)
		if err == nil || !apperror.IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
		wait *= 2
	}
	return err
}
