package simulation

import "errors"

var ErrInvalidConfig = errors.New("invalid simulation config")
