package material

import "errors"

var (
	ErrMaterialNotFound = errors.New("material not found")
	ErrInvalidType      = errors.New("invalid material type")
)
