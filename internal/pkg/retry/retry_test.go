package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperror"
	"github.com/stretchr/testify/assert"
)

func TestOnConflict_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := OnConflict(context.Background(), Policy{Attempts: 3, Backoff: time.Millisecond}, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return apperror.Conflict(errors.New("lock timeout"))
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestOnConflict_GivesUpAfterAttempts(t *testing.T) {
	calls := 0
	err := OnConflict(context.Background(), Policy{Attempts: 3, Backoff: time.Millisecond}, func(ctx context.Context) error {
		calls++
		return apperror.Conflict(errors.New("lock timeout"))
	})

	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, 3, calls)
}

func TestOnConflict_DoesNotRetryTerminalErrors(t *testing.T) {
	calls := 0
	err := OnConflict(context.Background(), DefaultPolicy(), func(ctx context.Context) error {
		calls++
		return apperror.New(apperror.KindInsufficientStock, "not enough")
	})

	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Equal(t, 1, calls)
}

func TestOnConflict_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := OnConflict(ctx, Policy{Attempts: 5, Backoff: time.Hour}, func(ctx context.Context) error {
		calls++
		cancel()
		return apperror.Conflict(errors.New("lock timeout"))
	})

	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, 1, calls)
}
