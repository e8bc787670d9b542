package packaging

import "errors"

var ErrPackagingNotFound = errors.New("packaging not found")
