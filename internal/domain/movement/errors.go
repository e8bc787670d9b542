package movement

import "errors"

var (
	ErrMovementNotFound = errors.New("movement not found")
	ErrInvalidType      = errors.New("invalid movement type")
	ErrInvalidDateRange = errors.New("start date after end date")
)
