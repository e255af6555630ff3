package sim

import "errors"

// Precondition violations of the admission protocol and the registry.
// Operations that return one of these leave all state untouched.
var (
	ErrStationFull       = errors.New("station has no free slot")
	ErrNotReserved       = errors.New("train is not reserved at station")
	ErrNotHeld           = errors.New("train is not held at station")
	ErrAlreadyBerthed    = errors.New("train is already reserved or held at a station")
	ErrTrainInTransit    = errors.New("train is already in transit")
	ErrSentinelPosition  = errors.New("coordinate is the transit sentinel")
	ErrDuplicateID       = errors.New("duplicate identifier")
	ErrDuplicatePosition = errors.New("a station already exists at this coordinate")
	ErrInvalidDepth      = errors.New("station depth must be non-negative")
	ErrUnknownTrain      = errors.New("train is not registered")
)

// Invariant breaches. These never occur while the protocol is followed.
var (
	ErrCapacityBreach   = errors.New("reserved plus held exceeds station depth")
	ErrMembershipBreach = errors.New("train is reserved or held at more than one station")
)
