package productionorder

import "errors"

var (
	ErrOrderNotFound = errors.New("production order not found")
	ErrInvalidStatus = errors.New("invalid production order status")
)
