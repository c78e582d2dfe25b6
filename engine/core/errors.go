package core

import (
	"errors"
)

var (
	ErrDegenerateLookDirection = errors.New("look transform eye and target coincide")
	ErrZeroLengthVector        = errors.New("zero-length direction vector")
	ErrUnknown                 = errors.New("unknown")
)
