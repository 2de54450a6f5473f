package internal

import (
	"errors"
	"fmt"
)

// ErrUnbalancedBatch is returned by EndBatch with no matching StartBatch.
var ErrUnbalancedBatch = errors.New("flux: end_batch with no matching start_batch")

// ErrNoActiveOwner is returned by OnCleanup called outside any
// effect/scope.
var ErrNoActiveOwner = errors.New("flux: on_cleanup has no active effect or scope")

// ErrDisposed is returned by any operation on a scope/effect handle after
// its cleanup has already run.
var ErrDisposed = errors.New("flux: operation on a disposed node")

// ConcurrencyError is panicked when a goroutine other than the one that
// created a Runtime touches its graph state.
type ConcurrencyError struct {
	OwnerGID  int64
	CallerGID int64
}

func (e ConcurrencyError) Error() string {
	return fmt.Sprintf("flux: graph owned by goroutine %d touched from goroutine %d", e.OwnerGID, e.CallerGID)
}
