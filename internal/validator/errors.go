package validator

import (
	"fmt"
)

type ErrInvalidArgument struct {
	error
}

func NewErrInvalidArgument(format string, args ...any) *ErrInvalidArgument {
	return &ErrInvalidArgument{fmt.Errorf(format, args...)}
}
