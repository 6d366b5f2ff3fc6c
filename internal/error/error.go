package error

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyID      = errors.New("empty ID")
	ErrIDExists     = errors.New("slot ID not unique")
	ErrSlotNotFound = errors.New("slot not found")
	ErrNilPool      = errors.New("pool is nil")

	ErrCollectionClosed = errors.New("collection is closed")
)

var (
	ErrNilFactory      = errors.New("engine factory is nil")
	ErrInvalidCapacity = errors.New("pool capacity must be positive")
	ErrPoolDisposed    = errors.New("pool is disposed")
	ErrEngineCreate    = errors.New("engine creation failed")
)

var (
	ErrIterationFailed  = errors.New("work item failed")
	ErrIterationEnded   = errors.New("work item ended before readiness")
	ErrIterationTimeout = errors.New("work item readiness timed out")
)

func New(err error, str string) error {
	return fmt.Errorf("%w: %s", err, str)
}
