package rent

import "errors"

var ErrInvalidName = errors.New("invalid character name")
