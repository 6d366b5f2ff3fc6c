package playerpool

import (
	errs "github.com/nikitachicherindev/playerpool/internal/error"
)

// Errors callers may match on with errors.Is.
var (
	ErrEmptyID          = errs.ErrEmptyID
	ErrIDExists         = errs.ErrIDExists
	ErrSlotNotFound     = errs.ErrSlotNotFound
	ErrCollectionClosed = errs.ErrCollectionClosed

	ErrNilFactory      = errs.ErrNilFactory
	ErrInvalidCapacity = errs.ErrInvalidCapacity
	ErrPoolDisposed    = errs.ErrPoolDisposed
	ErrEngineCreate    = errs.ErrEngineCreate
)
